package center

import (
	"strings"
	"time"

	"beacon/internal/notify"
)

// Status represents the lifecycle of a stored notification.
type Status string

const (
	StatusActive    Status = "active"
	StatusDismissed Status = "dismissed"
	StatusExpired   Status = "expired"
)

var allStatuses = []Status{StatusActive, StatusDismissed, StatusExpired}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Record is a notification persisted by the center. It is the store's view of
// a resolved notify.Record plus lifecycle state.
type Record struct {
	UID         string
	Level       notify.Level
	Title       string
	Body        string
	Action      string
	Position    notify.Position
	Dismissible bool
	AutoDismiss time.Duration
	Status      Status
	CreatedAt   time.Time
	ExpiresAt   *time.Time
	DismissedAt *time.Time
}

// Active reports whether the record is still shown.
func (r Record) Active() bool {
	return r.Status == StatusActive
}

// Stats aggregates stored notification counts per lifecycle state.
type Stats struct {
	Active    int
	Dismissed int
	Expired   int
	Total     int
}
