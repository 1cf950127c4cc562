package notify

import "time"

// Position anchors a notification on screen.
type Position string

const (
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
)

var allPositions = []Position{PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight}

var positionSet = func() map[Position]struct{} {
	set := make(map[Position]struct{}, len(allPositions))
	for _, position := range allPositions {
		set[position] = struct{}{}
	}
	return set
}()

// ParsePosition converts a string into a known Position.
func ParsePosition(value string) (Position, bool) {
	normalized := Position(value)
	_, ok := positionSet[normalized]
	return normalized, ok
}

// Notification is caller input to Notify. Level is required; presentation
// fields left at their zero value (or nil) fall back to the level defaults.
type Notification struct {
	Level  Level
	Title  string
	Body   string
	Action string

	// Position overrides the level default when non-empty.
	Position Position
	// Dismissible overrides the level default when non-nil.
	Dismissible *bool
	// AutoDismiss overrides the level default when non-nil. A zero duration
	// disables auto-dismiss entirely (the notification is sticky).
	AutoDismiss *time.Duration
}

// Record is the fully resolved notification forwarded to the surface. Every
// presentation field carries either the caller's value or the level default.
type Record struct {
	Level       Level
	Title       string
	Body        string
	Action      string
	Position    Position
	Dismissible bool
	AutoDismiss time.Duration
}

// Sticky reports whether the record never auto-dismisses.
func (r Record) Sticky() bool {
	return r.AutoDismiss <= 0
}

type levelDefaults struct {
	position    Position
	dismissible bool
	autoDismiss time.Duration
}

var defaultsByLevel = map[Level]levelDefaults{
	LevelInfo:    {position: PositionBottomRight, dismissible: true, autoDismiss: 2 * time.Second},
	LevelSuccess: {position: PositionBottomRight, dismissible: true, autoDismiss: 2 * time.Second},
	LevelError:   {position: PositionBottomRight, dismissible: true, autoDismiss: 4 * time.Second},
}

// DefaultsFor returns the default presentation record for a level. The second
// return is false for levels outside the enumeration.
func DefaultsFor(level Level) (Record, bool) {
	defaults, ok := defaultsByLevel[level]
	if !ok {
		return Record{}, false
	}
	return Record{
		Level:       level,
		Position:    defaults.position,
		Dismissible: defaults.dismissible,
		AutoDismiss: defaults.autoDismiss,
	}, true
}

// Resolve merges caller-supplied fields over the level defaults. Caller
// values always win. Unknown levels yield an InvalidLevelError.
func Resolve(data Notification) (Record, error) {
	record, ok := DefaultsFor(data.Level)
	if !ok {
		return Record{}, &InvalidLevelError{Level: string(data.Level)}
	}

	record.Title = data.Title
	record.Body = data.Body
	record.Action = data.Action
	if data.Position != "" {
		record.Position = data.Position
	}
	if data.Dismissible != nil {
		record.Dismissible = *data.Dismissible
	}
	if data.AutoDismiss != nil {
		record.AutoDismiss = *data.AutoDismiss
	}
	return record, nil
}

// Sticky returns an AutoDismiss override that disables auto-dismiss.
func Sticky() *time.Duration {
	d := time.Duration(0)
	return &d
}

// After returns an AutoDismiss override for the given duration.
func After(d time.Duration) *time.Duration {
	return &d
}

// Dismissible returns a Dismissible override.
func Dismissible(value bool) *bool {
	return &value
}
