package main

import (
	"encoding/json"
	"testing"

	"movielog/internal/preflight"
	"movielog/internal/testsupport"
)

func TestStatusReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := env.run(t, "", "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Vault directory")
	requireContains(t, out, "read/write ok")
	requireContains(t, out, "Reachable")
}

func TestStatusFlagsMissingVaultAndKey(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutVault(), testsupport.WithAPIKey(""))

	out, _, err := env.run(t, "", "status", "--json")
	if err != nil {
		t.Fatalf("status --json: %v", err)
	}
	var results []preflight.Result
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode status: %v\n%s", err, out)
	}
	if n := preflight.Failed(results); n != 2 {
		t.Fatalf("expected vault and OMDb failures, got %d: %+v", n, results)
	}
}
