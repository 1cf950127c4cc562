package notify

import "strings"

// Level classifies a notification by severity.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

var allLevels = []Level{LevelInfo, LevelSuccess, LevelError}

var levelSet = func() map[Level]struct{} {
	set := make(map[Level]struct{}, len(allLevels))
	for _, level := range allLevels {
		set[level] = struct{}{}
	}
	return set
}()

// AllLevels returns the ordered list of known levels.
func AllLevels() []Level {
	cp := make([]Level, len(allLevels))
	copy(cp, allLevels)
	return cp
}

// ParseLevel converts a string into a known Level.
func ParseLevel(value string) (Level, bool) {
	normalized := Level(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	return normalized, normalized.Valid()
}

// Valid reports whether the level is one of the closed enumeration.
func (l Level) Valid() bool {
	_, ok := levelSet[l]
	return ok
}

func levelNames() string {
	names := make([]string, 0, len(allLevels))
	for _, level := range AllLevels() {
		names = append(names, string(level))
	}
	return strings.Join(names, ", ")
}

func (l Level) String() string {
	return string(l)
}
