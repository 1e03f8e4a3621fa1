package main

import (
	"bytes"
	"testing"

	"devcatalyst/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRootCommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "diagnose", "migrate", "prune-sessions"})
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &domain.DiagnosticsReport{
		Suite:       domain.SuiteDebug,
		APIURL:      "http://localhost:8000/api",
		Environment: "development",
		Checks: []domain.CheckResult{
			{Name: "Backend Connectivity", Status: domain.CheckPass, HTTPStatus: 200, DurationMS: 12},
			{Name: "CORS Configuration", Status: domain.CheckFail, Error: "origin not allowed"},
		},
	})
	out := buf.String()
	assert.Contains(t, out, "http://localhost:8000/api")
	assert.Contains(t, out, "Backend Connectivity")
	assert.Contains(t, out, "12ms")
	assert.Contains(t, out, "origin not allowed")
}
