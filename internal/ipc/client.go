package ipc

import (
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

const dialTimeout = 2 * time.Second

// Client is a JSON-RPC client for the beacond control socket.
type Client struct {
	conn *rpc.Client
}

// Dial connects to the daemon socket at the given path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon socket: %w", err)
	}
	return &Client{conn: jsonrpc.NewClient(conn)}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Post submits a notification and returns its assigned uid.
func (c *Client) Post(req PostRequest) (string, error) {
	var resp PostResponse
	if err := c.conn.Call("Beacon.Post", req, &resp); err != nil {
		return "", err
	}
	return resp.UID, nil
}

// Hide dismisses the notification with the given uid. The returned flag
// reports whether an active notification was actually dismissed.
func (c *Client) Hide(uid string) (bool, error) {
	var resp HideResponse
	if err := c.conn.Call("Beacon.Hide", HideRequest{UID: uid}, &resp); err != nil {
		return false, err
	}
	return resp.Hidden, nil
}

// List returns all active notifications.
func (c *Client) List() ([]Notification, error) {
	var resp ListResponse
	if err := c.conn.Call("Beacon.List", ListRequest{}, &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// History returns recent notifications regardless of status, newest first.
func (c *Client) History(limit int) ([]Notification, error) {
	var resp HistoryResponse
	if err := c.conn.Call("Beacon.History", HistoryRequest{Limit: limit}, &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// ClearHistory removes all dismissed and expired notifications.
func (c *Client) ClearHistory() (int64, error) {
	var resp ClearHistoryResponse
	if err := c.conn.Call("Beacon.ClearHistory", ClearHistoryRequest{}, &resp); err != nil {
		return 0, err
	}
	return resp.Removed, nil
}

// Status returns a snapshot of daemon state.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.conn.Call("Beacon.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop asks the daemon to shut down.
func (c *Client) Stop() (bool, error) {
	var resp StopResponse
	if err := c.conn.Call("Beacon.Stop", StopRequest{}, &resp); err != nil {
		return false, err
	}
	return resp.Stopped, nil
}

// TestNotification posts a canned notification to verify the pipeline.
func (c *Client) TestNotification() (string, error) {
	var resp TestNotificationResponse
	if err := c.conn.Call("Beacon.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return "", err
	}
	return resp.UID, nil
}
