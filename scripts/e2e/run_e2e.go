// Package main runs E2E scenarios against a deployed lead-capture API.
//
// Scenarios cover:
//   - Health reporting
//   - Happy-path submission
//   - Required-field rejection
//   - Per-field format rejection
//   - Repeat submissions creating separate records
//   - Wrong method on the submit route
//
// Usage:
//
//	API_BASE_URL=... go run scripts/e2e/run_e2e.go [scenario-name]
//	API_BASE_URL=... go run scripts/e2e/run_e2e.go               # runs all
//	API_BASE_URL=... go run scripts/e2e/run_e2e.go happy-path    # runs one
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wolfman30/lead-capture/internal/leadform"
	"github.com/wolfman30/lead-capture/internal/leads"
)

const requestTimeout = 15 * time.Second

var (
	apiBase string
	client  *leadform.Client
)

type scenario struct {
	Name string
	Fn   func(t *T)
}

// T is a lightweight test context for a single scenario.
type T struct {
	passed int
	failed int
	name   string
}

func (t *T) check(name string, ok bool) {
	if ok {
		fmt.Printf("    PASS: %s\n", name)
		t.passed++
	} else {
		fmt.Printf("    FAIL: %s\n", name)
		t.failed++
	}
}

func (t *T) fatalf(format string, args ...interface{}) {
	fmt.Printf("    FATAL: "+format+"\n", args...)
	t.failed++
}

func uniqueLead() leads.SubmitLeadRequest {
	ts := time.Now().UnixNano()
	return leads.SubmitLeadRequest{
		Name:   "E2E Tester",
		Mobile: fmt.Sprintf("555%010d", ts%10000000000),
		Email:  fmt.Sprintf("e2e+%d@example.com", ts),
	}
}

func submit(req leads.SubmitLeadRequest) (*leads.Lead, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return client.Submit(ctx, req)
}

func serverError(err error) *leadform.ServerError {
	var se *leadform.ServerError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

func scenarioHealth(t *T) {
	resp, err := http.Get(apiBase + "/health")
	if err != nil {
		t.fatalf("health request: %v", err)
		return
	}
	defer resp.Body.Close()

	var body struct {
		Status            string `json:"status"`
		StorageConfigured bool   `json:"storage_configured"`
	}
	t.check("health returns 200", resp.StatusCode == http.StatusOK)
	t.check("health body decodes", json.NewDecoder(resp.Body).Decode(&body) == nil)
	t.check("status is ok", body.Status == "ok")
	t.check("storage is configured", body.StorageConfigured)
}

func scenarioHappyPath(t *T) {
	req := uniqueLead()
	lead, err := submit(req)
	if err != nil {
		t.fatalf("submit: %v", err)
		return
	}
	t.check("record returned", lead != nil)
	if lead == nil {
		return
	}
	t.check("id assigned", lead.ID != "")
	t.check("status is new", lead.Status == leads.StatusNew)
	t.check("email echoed", lead.Email == req.Email)
	t.check("created_at set", !lead.CreatedAt.IsZero())
}

func scenarioMissingFields(t *T) {
	req := uniqueLead()
	req.Mobile = ""
	_, err := submit(req)
	se := serverError(err)
	t.check("rejected with server error", se != nil)
	if se == nil {
		return
	}
	t.check("status is 400", se.StatusCode == http.StatusBadRequest)
	t.check("required-fields message", se.Message == leads.MsgFieldsRequired)
}

func scenarioInvalidFormat(t *T) {
	_, err := submit(leads.SubmitLeadRequest{Name: "J", Mobile: "555", Email: "not-an-email"})
	se := serverError(err)
	t.check("rejected with server error", se != nil)
	if se == nil {
		return
	}
	t.check("status is 400", se.StatusCode == http.StatusBadRequest)
	t.check("invalid-fields message", se.Message == leads.MsgInvalidFields)
}

func scenarioRepeatSubmission(t *T) {
	req := uniqueLead()
	first, err := submit(req)
	if err != nil {
		t.fatalf("first submit: %v", err)
		return
	}
	second, err := submit(req)
	if err != nil {
		t.fatalf("second submit: %v", err)
		return
	}
	t.check("both records returned", first != nil && second != nil)
	if first != nil && second != nil {
		t.check("distinct ids", first.ID != second.ID)
	}
}

func scenarioWrongMethod(t *T) {
	resp, err := http.Get(apiBase + "/api/submit-lead")
	if err != nil {
		t.fatalf("get submit route: %v", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	t.check("GET is 405", resp.StatusCode == http.StatusMethodNotAllowed)
}

func main() {
	_ = godotenv.Load()
	apiBase = strings.TrimRight(os.Getenv("API_BASE_URL"), "/")
	if apiBase == "" {
		fmt.Fprintln(os.Stderr, "ERROR: API_BASE_URL required")
		os.Exit(1)
	}
	client = leadform.NewClient(apiBase+"/api/submit-lead", leadform.WithTimeout(requestTimeout))

	scenarios := []scenario{
		{"health", scenarioHealth},
		{"happy-path", scenarioHappyPath},
		{"missing-fields", scenarioMissingFields},
		{"invalid-format", scenarioInvalidFormat},
		{"repeat-submission", scenarioRepeatSubmission},
		{"wrong-method", scenarioWrongMethod},
	}

	// Filter by name if argument provided
	filter := ""
	if len(os.Args) > 1 {
		filter = os.Args[1]
	}

	totalPassed := 0
	totalFailed := 0
	scenarioResults := make([]string, 0)

	for _, s := range scenarios {
		if filter != "" && s.Name != filter {
			continue
		}

		fmt.Printf("\n========================================\n")
		fmt.Printf("SCENARIO: %s\n", s.Name)
		fmt.Printf("========================================\n")

		t := &T{name: s.Name}
		s.Fn(t)

		totalPassed += t.passed
		totalFailed += t.failed

		status := "✅"
		if t.failed > 0 {
			status = "❌"
		}
		scenarioResults = append(scenarioResults, fmt.Sprintf("  %s %s (%d passed, %d failed)", status, s.Name, t.passed, t.failed))
	}

	fmt.Printf("\n========================================\n")
	fmt.Println("SUMMARY")
	fmt.Printf("========================================\n")
	for _, r := range scenarioResults {
		fmt.Println(r)
	}
	fmt.Printf("\nTotal: %d passed, %d failed\n", totalPassed, totalFailed)

	if totalFailed > 0 {
		fmt.Println("\n❌ SOME TESTS FAILED")
		os.Exit(1)
	}
	fmt.Println("\n✅ ALL TESTS PASSED")
}
