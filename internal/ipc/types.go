package ipc

// Notification mirrors a stored notification for IPC callers.
type Notification struct {
	UID           string `json:"uid"`
	Level         string `json:"level"`
	Title         string `json:"title,omitempty"`
	Body          string `json:"body,omitempty"`
	Action        string `json:"action,omitempty"`
	Position      string `json:"position"`
	Dismissible   bool   `json:"dismissible"`
	AutoDismissMS int64  `json:"auto_dismiss_ms"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	DismissedAt   string `json:"dismissed_at,omitempty"`
}

// PostRequest shows a new notification. Level is required; nil override
// fields fall back to the level defaults.
type PostRequest struct {
	Level         string `json:"level"`
	Title         string `json:"title,omitempty"`
	Body          string `json:"body,omitempty"`
	Action        string `json:"action,omitempty"`
	Position      string `json:"position,omitempty"`
	Dismissible   *bool  `json:"dismissible,omitempty"`
	AutoDismissMS *int64 `json:"auto_dismiss_ms,omitempty"`
}

// PostResponse carries the uid assigned to the shown notification.
type PostResponse struct {
	UID string `json:"uid"`
}

// HideRequest removes a notification by uid.
type HideRequest struct {
	UID string `json:"uid"`
}

// HideResponse reports whether a notification actually transitioned. Unknown
// uids yield Hidden=false with no error.
type HideResponse struct {
	Hidden bool `json:"hidden"`
}

// ListRequest fetches active notifications.
type ListRequest struct{}

// ListResponse contains active notifications ordered by creation time.
type ListResponse struct {
	Notifications []Notification `json:"notifications"`
}

// HistoryRequest fetches terminal notifications, newest first.
type HistoryRequest struct {
	Limit int `json:"limit"`
}

// HistoryResponse contains terminal notifications.
type HistoryResponse struct {
	Notifications []Notification `json:"notifications"`
}

// ClearHistoryRequest removes terminal notifications.
type ClearHistoryRequest struct{}

// ClearHistoryResponse reports number of removed entries.
type ClearHistoryResponse struct {
	Removed int64 `json:"removed"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents daemon runtime information.
type StatusResponse struct {
	Running       bool   `json:"running"`
	PID           int    `json:"pid"`
	SocketPath    string `json:"socket_path"`
	DatabasePath  string `json:"database_path"`
	LockPath      string `json:"lock_path"`
	DeviceMonitor bool   `json:"device_monitor"`
	Active        int    `json:"active"`
	Dismissed     int    `json:"dismissed"`
	Expired       int    `json:"expired"`
	Total         int    `json:"total"`
}

// StopRequest stops the daemon process.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// TestNotificationRequest posts a test notification.
type TestNotificationRequest struct{}

// TestNotificationResponse reports the test notification's uid.
type TestNotificationResponse struct {
	UID string `json:"uid"`
}
