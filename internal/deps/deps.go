package deps

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Requirement defines an external tool Beacon relies on for delivery.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a tool.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// DesktopRequirements returns the delivery tools for the current platform.
func DesktopRequirements() []Requirement {
	switch runtime.GOOS {
	case "darwin":
		return []Requirement{
			{
				Name:        "osascript",
				Command:     "osascript",
				Description: "Required for macOS desktop notifications",
			},
		}
	default:
		return []Requirement{
			{
				Name:        "notify-send",
				Command:     "notify-send",
				Description: "Required for desktop notifications",
			},
		}
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
