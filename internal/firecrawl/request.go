package firecrawl

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
)

// envelope is the common shape of every Firecrawl response.
type envelope struct {
	Success bool           `mapstructure:"success"`
	Error   string         `mapstructure:"error"`
	Data    map[string]any `mapstructure:"data"`
}

// postJSON sends payload to path and decodes the response envelope.
func (c *Client) postJSON(ctx context.Context, path string, payload any) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.request(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("bad status: %s", resp.Status)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var env envelope
	if err := mapstructure.Decode(raw, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if env.Error != "" {
			return nil, fmt.Errorf("bad status: %s: %s", resp.Status, env.Error)
		}
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	return &env, nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}
