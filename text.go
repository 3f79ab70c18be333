package quote0

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// TextContentRequest is the payload for the device text endpoint.
// Every field is optional; unset fields are omitted from the wire so the
// server applies its own defaults (an omitted RefreshNow defaults to true).
//
// Display Layout:
// The Quote/0 screen has a fixed layout (296x152 pixels):
//   - Title: displays on the first line
//   - Message: displays on the next three lines
//   - Icon: 40x40px at the bottom-left corner
//   - Signature: fixed at the bottom-right corner
//
// If any field is omitted, that area remains blank. The layout does not reflow or adjust responsively.
type TextContentRequest struct {
	// RefreshNow toggles an immediate refresh on the targeted Quote/0 display. Optional.
	RefreshNow *bool `json:"refreshNow,omitempty"`
	// Title displays on the first line. Optional.
	Title string `json:"title,omitempty"`
	// Message displays on the next three lines. Optional.
	Message string `json:"message,omitempty"`
	// Signature displays fixed at the bottom-right corner. Optional.
	Signature string `json:"signature,omitempty"`
	// Icon is a base64-encoded 40x40px PNG shown at the bottom-left corner. Optional.
	Icon string `json:"icon,omitempty"`
	// Link is an optional URL that the Quote/0 companion app can open when interacting with the device.
	Link string `json:"link,omitempty"`
	// TaskKey identifies the queued task to create or replace. Optional; see NewTaskKey.
	TaskKey string `json:"taskKey,omitempty"`
}

// SendText pushes text content to a device. If deviceID is empty, the
// client's default device is used. An empty request is syntactically valid;
// the server decides whether to accept it.
func (c *Client) SendText(ctx context.Context, deviceID string, content TextContentRequest) (*APIResponse, error) {
	did, err := c.resolveDeviceID(deviceID)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s/device/%s/text", apiPrefix, url.PathEscape(did))
	raw, err := c.do(ctx, http.MethodPost, path, content)
	if err != nil {
		return nil, err
	}
	return decodeJSON[*APIResponse](raw, "APIResponse")
}

// SendTextSimple is a convenience helper using Background context, the default
// device, and immediate refresh. Title and message are optional. Signature is
// variadic; when omitted, no signature is sent.
func (c *Client) SendTextSimple(title, message string, signature ...string) (*APIResponse, error) {
	sig := ""
	if len(signature) > 0 {
		sig = signature[0]
	}
	return c.SendText(context.Background(), "", TextContentRequest{
		RefreshNow: Bool(true),
		Title:      title,
		Message:    message,
		Signature:  sig,
	})
}
