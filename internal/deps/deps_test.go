package deps_test

import (
	"testing"

	"beacon/internal/deps"
)

func TestCheckBinariesMissing(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "Nope", Command: "definitely-not-a-real-binary-xyz"},
	})
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Available {
		t.Fatal("expected missing binary to report unavailable")
	}
	if statuses[0].Detail == "" {
		t.Fatal("expected detail for missing binary")
	}
}

func TestCheckBinariesUnconfigured(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "Empty", Command: "  "},
	})
	if statuses[0].Available {
		t.Fatal("expected unconfigured command to report unavailable")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %s", statuses[0].Detail)
	}
}

func TestCheckBinariesAvailable(t *testing.T) {
	// sh is present on any system these tests run on.
	statuses := deps.CheckBinaries([]deps.Requirement{
		{Name: "Shell", Command: "sh", Description: "test"},
	})
	if !statuses[0].Available {
		t.Fatalf("expected sh to be available: %s", statuses[0].Detail)
	}
}

func TestDesktopRequirementsNonEmpty(t *testing.T) {
	reqs := deps.DesktopRequirements()
	if len(reqs) == 0 {
		t.Fatal("expected at least one desktop requirement")
	}
	for _, req := range reqs {
		if req.Command == "" {
			t.Fatalf("requirement %q has no command", req.Name)
		}
	}
}
