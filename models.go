package quote0

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Device describes one registered Quote/0 unit as returned by the devices
// listing. The serial number in ID is the identity used by every other call.
type Device struct {
	// Series is the product series (e.g. "quote").
	Series string `json:"series"`
	// Model is the product model (e.g. "quote_0").
	Model string `json:"model"`
	// Edition is the hardware edition (1 or 2).
	Edition int `json:"edition"`
	// ID is the device serial number.
	ID string `json:"id"`
}

// BatteryStatus carries battery and Wi-Fi readings. All values are opaque
// strings formatted by the server.
type BatteryStatus struct {
	// Version is the battery firmware version.
	Version string `json:"version"`
	// Current is the current battery state.
	Current string `json:"current"`
	// Description explains the current state.
	Description string `json:"description"`
	// Battery is the battery level.
	Battery string `json:"battery"`
	// Wifi is the Wi-Fi signal strength.
	Wifi string `json:"wifi"`
}

// CurrentRenderInfo describes what the device is showing right now.
type CurrentRenderInfo struct {
	// Rotated reports whether the display is rotated.
	Rotated bool `json:"rotated"`
	// Border is the screen edge color (0=white, 1=black).
	Border int `json:"border"`
	// Image lists URLs of the rendered frames.
	Image []string `json:"image"`
}

// NextRenderTime carries the device's upcoming wake timestamps.
type NextRenderTime struct {
	// Battery is the next battery check timestamp.
	Battery string `json:"battery"`
	// Power is the next power check timestamp.
	Power string `json:"power"`
}

// RenderInfo groups last/current/next render details for a device.
type RenderInfo struct {
	// Last is the last render timestamp.
	Last string `json:"last"`
	// Current describes the content currently on screen.
	Current CurrentRenderInfo `json:"current"`
	// Next carries the upcoming render timestamps.
	Next NextRenderTime `json:"next"`
}

// DeviceStatus is the full status report for one device. Alias and Location
// are nil when the owner has not set them in the companion app.
type DeviceStatus struct {
	// DeviceID is the device serial number.
	DeviceID string `json:"deviceId"`
	// Alias is the user-assigned device name, if any.
	Alias *string `json:"alias,omitempty"`
	// Location is the user-assigned device location, if any.
	Location *string `json:"location,omitempty"`
	// Status carries battery and Wi-Fi readings.
	Status BatteryStatus `json:"status"`
	// RenderInfo carries rendering details.
	RenderInfo RenderInfo `json:"renderInfo"`
}

// TaskType discriminates queued task variants.
type TaskType string

const (
	// TaskTypeText marks a task created through the text API.
	TaskTypeText TaskType = "TEXT_API"
	// TaskTypeImage marks a task created through the image API.
	TaskTypeImage TaskType = "IMAGE_API"
)

// TaskListLoop is the only task list the authV2 API currently exposes.
const TaskListLoop = "loop"

// Task is one queued content item on a device. Fields past Key are
// variant-specific and nil/absent on the other variant; the server does not
// enforce that text-only fields are absent on image tasks.
type Task struct {
	// Type is TEXT_API or IMAGE_API.
	Type TaskType `json:"type"`
	// Key uniquely identifies the task per device and type.
	Key string `json:"key"`
	// RefreshNow reports whether the task refreshes the screen immediately.
	RefreshNow bool `json:"refreshNow"`
	// Title is the text task title, if any.
	Title *string `json:"title,omitempty"`
	// Message is the text task body, if any.
	Message *string `json:"message,omitempty"`
	// Border is the image task border (0=white, 1=black), if any.
	Border *BorderColor `json:"border,omitempty"`
	// DitherType is the image task dithering mode, if any.
	DitherType *DitherType `json:"ditherType,omitempty"`
	// DitherKernel is the image task dithering kernel, if any.
	DitherKernel *DitherKernel `json:"ditherKernel,omitempty"`
}

// Code is the service status code inside an APIResponse. The server is
// inconsistent about the wire type and emits either a JSON number or a JSON
// string depending on the endpoint, so both forms are accepted and preserved.
type Code struct {
	num   int64
	str   string
	isStr bool
}

// CodeInt builds a numeric Code, mostly useful in tests.
func CodeInt(n int64) Code { return Code{num: n} }

// CodeString builds a string Code, mostly useful in tests.
func CodeString(s string) Code { return Code{str: s, isStr: true} }

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("quote0: empty code value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		c.str = s
		c.isStr = true
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	c.num = n
	c.isStr = false
	return nil
}

// MarshalJSON re-emits the code in the wire form it arrived in.
func (c Code) MarshalJSON() ([]byte, error) {
	if c.isStr {
		return json.Marshal(c.str)
	}
	return json.Marshal(c.num)
}

// IsZero reports whether the code equals zero under either representation
// (integer 0 or string "0").
func (c Code) IsZero() bool {
	if c.isStr {
		return strings.TrimSpace(c.str) == "0"
	}
	return c.num == 0
}

// String renders the code for display regardless of wire form.
func (c Code) String() string {
	if c.isStr {
		return c.str
	}
	return strconv.FormatInt(c.num, 10)
}

// APIResponse is the generic envelope returned by mutating endpoints
// (switch-to-next, send text, send image).
type APIResponse struct {
	// Code is 0 (or "0") on success.
	Code Code `json:"code"`
	// Message is the server's status message.
	Message string `json:"message"`
	// Result carries endpoint-specific payload, if any.
	Result map[string]interface{} `json:"result,omitempty"`
}

// Success reports whether Code equals zero under either wire representation.
func (r *APIResponse) Success() bool { return r.Code.IsZero() }
