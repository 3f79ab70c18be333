package quote0

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ListDevices returns every device registered to the API token's account.
// An account with no devices yields an empty slice, not an error.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	raw, err := c.do(ctx, http.MethodGet, apiPrefix+"/devices", nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON[[]Device](raw, "[]Device")
}

// GetDeviceStatus returns the status report for one device. If deviceID is
// empty, the client's default device is used.
func (c *Client) GetDeviceStatus(ctx context.Context, deviceID string) (*DeviceStatus, error) {
	did, err := c.resolveDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s/device/%s/status", apiPrefix, url.PathEscape(did))
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON[*DeviceStatus](raw, "DeviceStatus")
}

// SwitchToNext advances the device to the next content in its queue. If
// deviceID is empty, the client's default device is used.
func (c *Client) SwitchToNext(ctx context.Context, deviceID string) (*APIResponse, error) {
	did, err := c.resolveDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s/device/%s/next", apiPrefix, url.PathEscape(did))
	raw, err := c.do(ctx, http.MethodPost, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON[*APIResponse](raw, "APIResponse")
}

// ListTasks returns the queued tasks of one device. taskType must be
// TaskListLoop ("loop"), the only list the API currently exposes; an empty
// taskType defaults to it, anything else fails locally without dispatching.
// If deviceID is empty, the client's default device is used.
func (c *Client) ListTasks(ctx context.Context, deviceID, taskType string) ([]Task, error) {
	did, err := c.resolveDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	taskType = strings.TrimSpace(taskType)
	if taskType == "" {
		taskType = TaskListLoop
	}
	if taskType != TaskListLoop {
		return nil, newLocalValidationError(
			fmt.Sprintf("invalid task type %q, only %q is currently supported", taskType, TaskListLoop))
	}
	path := fmt.Sprintf("%s/device/%s/%s/list", apiPrefix, url.PathEscape(did), taskType)
	raw, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON[[]Task](raw, "[]Task")
}
