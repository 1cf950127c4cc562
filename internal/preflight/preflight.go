package preflight

import (
	"context"
	"strings"

	"beacon/internal/config"
	"beacon/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding channel is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Data directory holds the database, socket, and lock file.
	results = append(results, CheckDirectoryAccess("Data directory", cfg.Paths.DataDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckDiskSpace("Disk space", cfg.Paths.DataDir))

	if cfg.Desktop.Enabled {
		results = append(results, CheckDesktopTools())
	}

	if strings.TrimSpace(cfg.Ntfy.Topic) != "" {
		results = append(results, CheckNtfy(ctx, cfg.Ntfy.Topic))
	}

	return results
}

// CheckDesktopTools verifies that a desktop delivery tool is installed.
func CheckDesktopTools() Result {
	const name = "Desktop delivery"

	statuses := deps.CheckBinaries(deps.DesktopRequirements())
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			return Result{Name: name, Detail: status.Detail}
		}
	}
	return Result{Name: name, Passed: true, Detail: "delivery tool available"}
}
