// Package sample generates synthetic job candidates for demos and tests.
// Nothing here is scraped: every value comes from the fixed tables below.
package sample

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spigell/job-scraper/internal/jobs"
)

const (
	URLPrefix = "https://remotejobs.example.com/job/"

	firstJobNumber = 1000
	maxDaysAgo     = 30

	// Contract and freelance postings quote hourly rates in [15, 20] with a
	// max up to 5 above the min.
	minHourlyRate = 15
	hourlySpread  = 6
)

type company struct {
	name string
	url  string
}

var companies = []company{
	{"TechCorp Inc", "https://techcorp.com"},
	{"StartupXYZ", "https://startupxyz.com"},
	{"Digital Solutions LLC", "https://digitalsol.com"},
	{"CloudBase Systems", "https://cloudbase.io"},
	{"AI Innovations Lab", "https://ailab.com"},
	{"Fintech Pro", "https://fintech-pro.com"},
	{"WebDev Labs", "https://webdevlabs.com"},
	{"DataStream Inc", "https://datastream.io"},
	{"Neural Networks Co", "https://neural-net.com"},
	{"CodeFactory", "https://codefactory.dev"},
	{"ByteWorks", "https://byteworks.io"},
	{"Pixel Labs", "https://pixellabs.dev"},
	{"Swift Studios", "https://swiftstudios.com"},
	{"RoboTech Solutions", "https://robotech.io"},
	{"Quantum Systems", "https://quantum-sys.com"},
	{"Apollo Development", "https://apollodev.com"},
	{"Nexus Technologies", "https://nexus-tech.io"},
	{"Spark Labs", "https://spark-labs.com"},
	{"Vertex AI", "https://vertex-ai.io"},
	{"Infinity Code", "https://infinity-code.dev"},
}

var titles = []string{
	"Senior Node.js Developer",
	"Full Stack JavaScript Developer",
	"TypeScript Engineer",
	"AI/ML Engineer",
	"Senior Software Engineer",
	"DevOps Engineer with Node.js",
	"React Native Developer",
	"Machine Learning Engineer",
	"Backend Engineer",
	"Full Stack Developer",
	"Software Architect",
	"Tech Lead",
	"Principal Engineer",
	"AI Specialist",
	"Cloud Engineer",
	"Solutions Architect",
	"Staff Engineer",
	"JavaScript Developer",
	"TypeScript Specialist",
	"Node.js Architect",
}

var locations = []string{
	"San Francisco, CA",
	"New York, NY, USA",
	"London, UK",
	"Toronto, Canada",
	"Sydney, Australia",
	"Berlin, Germany",
	"Amsterdam, Netherlands",
	"Singapore",
	"Tokyo, Japan",
	"Remote (Worldwide)",
	"Austin, TX, USA",
	"Seattle, WA, USA",
	"Boston, MA, USA",
	"Paris, France",
	"Toronto, ON",
	"Vancouver, Canada",
	"Melbourne, Australia",
	"Dublin, Ireland",
	"Stockholm, Sweden",
	"Copenhagen, Denmark",
}

var descriptions = []string{
	"We are looking for an experienced developer to join our growing team and help build scalable applications.",
	"Help us build the next generation of AI-powered applications using modern tech stacks.",
	"Work with cutting-edge technologies in a fast-paced startup environment with great work-life balance.",
	"Join a world-class team building innovative software solutions for millions of users worldwide.",
	"Contribute to open-source projects and make an impact on the developer community.",
	"We offer competitive salary, equity, and flexible work arrangements for top talent.",
	"Be part of a team that values innovation, quality, and collaboration in a remote-first culture.",
	"Exciting opportunity to lead technical initiatives and mentor junior developers.",
	"Build microservices and distributed systems at scale for a growing user base.",
	"Work on challenging problems using TypeScript, Node.js, and modern DevOps practices.",
}

var skillSets = [][]string{
	{"Node.js", "TypeScript", "React", "AWS", "Docker"},
	{"JavaScript", "Python", "Docker", "Kubernetes", "PostgreSQL"},
	{"TypeScript", "GraphQL", "PostgreSQL", "AWS", "Redis"},
	{"Python", "TensorFlow", "PyTorch", "AWS", "Machine Learning"},
	{"Node.js", "Express", "MongoDB", "Redis", "AWS"},
	{"React", "Vue.js", "Angular", "TypeScript", "Node.js"},
	{"Machine Learning", "Python", "Pandas", "Scikit-learn", "TensorFlow"},
	{"Golang", "Rust", "Kubernetes", "Docker", "gRPC"},
	{"JavaScript", "React", "Node.js", "AWS", "CI/CD"},
	{"TypeScript", "NestJS", "PostgreSQL", "Docker", "Kubernetes"},
	{"Python", "Django", "FastAPI", "PostgreSQL", "AWS"},
	{"Node.js", "Microservices", "Docker", "Kubernetes", "AWS"},
	{"JavaScript", "TypeScript", "React", "Node.js", "MongoDB"},
	{"AI", "Python", "LLMs", "Machine Learning", "FastAPI"},
	{"Cloud Architecture", "AWS", "Kubernetes", "DevOps", "Terraform"},
}

// Full-time is weighted three times, contract twice.
var jobTypes = []jobs.JobType{
	jobs.JobTypeFullTime, jobs.JobTypeFullTime, jobs.JobTypeFullTime,
	jobs.JobTypeContract, jobs.JobTypeContract,
	jobs.JobTypeFreelance,
}

// Generate returns n synthetic remote candidates. Tables are cycled by index;
// salaries and posting dates come from a PCG source seeded with seed, so equal
// arguments give equal output. Full-time postings carry annual salaries: min
// in [80k, 140k), max in min + [40k, 120k). Contract and freelance postings
// carry hourly rates such as "17/hr". Posting dates fall within 30 days
// before now.
func Generate(n int, seed uint64, now time.Time) []jobs.Candidate {
	if n <= 0 {
		return []jobs.Candidate{}
	}

	rnd := rand.New(rand.NewPCG(seed, seed))
	out := make([]jobs.Candidate, 0, n)

	for i := 0; i < n; i++ {
		co := companies[i%len(companies)]

		minSalary := 80000 + rnd.Float64()*60000
		maxSalary := minSalary + 40000 + rnd.Float64()*80000
		rate := minHourlyRate + rnd.IntN(hourlySpread)
		maxRate := rate + rnd.IntN(hourlySpread)
		daysAgo := rnd.IntN(maxDaysAgo)

		c := jobs.NewCandidate(URLPrefix + strconv.Itoa(firstJobNumber+i))
		c.Title = fmt.Sprintf("%s #%d", titles[i%len(titles)], i+1)
		c.Company = co.name
		c.CompanyURL = co.url
		c.Location = locations[i%len(locations)]
		c.JobType = jobTypes[i%len(jobTypes)]
		switch c.JobType {
		case jobs.JobTypeContract, jobs.JobTypeFreelance:
			c.SalaryMin = jobs.StringPtr(strconv.Itoa(rate) + "/hr")
			c.SalaryMax = jobs.StringPtr(strconv.Itoa(maxRate) + "/hr")
		default:
			c.SalaryMin = jobs.StringPtr(strconv.Itoa(int(minSalary)))
			c.SalaryMax = jobs.StringPtr(strconv.Itoa(int(maxSalary)))
		}
		c.Skills = append([]string(nil), skillSets[i%len(skillSets)]...)
		c.Description = descriptions[i%len(descriptions)]
		c.PostedDate = now.AddDate(0, 0, -daysAgo).Format(time.DateOnly)

		out = append(out, c)
	}

	return out
}
