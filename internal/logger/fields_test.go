package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  run_id  ", Value: "  abc  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "run_id" || fields[0].String != "abc" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}

	if empty := StringFields(); len(empty) != 0 {
		t.Fatalf("expected empty fields, got %d", len(empty))
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithFields(zap.New(core), zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if ctx := entries[0].ContextMap(); ctx["foo"] != "bar" {
		t.Fatalf("expected field to be bar, got %q", ctx["foo"])
	}

	fallback := WithFields(nil, zap.String("baz", "qux"))
	if fallback == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
	fallback.Info("another log")
}

func TestWithRun(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithRun(zap.New(core), "0b4c", "run").Info("starting")
	WithRun(zap.New(core), "", "sample").Info("starting")

	entries := observed.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if first[FieldRunID] != "0b4c" || first[FieldCommand] != "run" {
		t.Fatalf("unexpected run fields: %v", first)
	}

	second := entries[1].ContextMap()
	if _, ok := second[FieldRunID]; ok {
		t.Fatalf("empty run id must be omitted: %v", second)
	}
	if second[FieldCommand] != "sample" {
		t.Fatalf("unexpected command field: %v", second[FieldCommand])
	}
}

func TestWithAI(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithAI(zap.New(core), "gemini", "gemini-2.5-flash").Info("test log")

	ctx := observed.All()[0].ContextMap()
	if ctx[FieldProvider] != "gemini" || ctx[FieldModel] != "gemini-2.5-flash" {
		t.Fatalf("unexpected ai fields: %v", ctx)
	}

	if WithAI(nil, "gemini", "m") == nil {
		t.Fatalf("expected fallback logger when nil provided")
	}
}
