package sink

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"beacon/internal/notify"
)

// Desktop forwards notifications to the host notification system through a
// command-line tool: notify-send on Linux, osascript on macOS.
type Desktop struct {
	platform string
	tool     string
}

// NewDesktop returns a desktop sink for the current platform, or nil when no
// supported tool is installed.
func NewDesktop() *Desktop {
	switch runtime.GOOS {
	case "linux":
		if toolAvailable("notify-send") {
			return &Desktop{platform: "linux", tool: "notify-send"}
		}
	case "darwin":
		if toolAvailable("osascript") {
			return &Desktop{platform: "darwin", tool: "osascript"}
		}
	}
	return nil
}

func (d *Desktop) Name() string { return "desktop" }

// Deliver shows the notification via the platform tool. The record's
// auto-dismiss is translated to the tool's timeout where supported; the
// desktop server owns the actual dismissal, mirroring the center's timers.
func (d *Desktop) Deliver(ctx context.Context, _ string, record notify.Record) error {
	cmd := d.command(ctx, record)
	if cmd == nil {
		return nil
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			return fmt.Errorf("%s: %w", d.tool, err)
		}
		return fmt.Errorf("%s: %w: %s", d.tool, err, detail)
	}
	return nil
}

func (d *Desktop) command(ctx context.Context, record notify.Record) *exec.Cmd {
	title := strings.TrimSpace(record.Title)
	if title == "" {
		title = "beacon"
	}
	switch d.platform {
	case "linux":
		args := []string{"--app-name=beacon", "--urgency=" + urgencyFor(record.Level)}
		if !record.Sticky() {
			args = append(args, "--expire-time="+strconv.FormatInt(record.AutoDismiss.Milliseconds(), 10))
		}
		args = append(args, title, record.Body)
		return exec.CommandContext(ctx, d.tool, args...)
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", record.Body, title)
		return exec.CommandContext(ctx, d.tool, "-e", script)
	default:
		return nil
	}
}

func urgencyFor(level notify.Level) string {
	if level == notify.LevelError {
		return "critical"
	}
	return "normal"
}

func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
