package quote0

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

const statusBody = `{
	"deviceId": "ABC123",
	"status": {
		"version": "1.2.3",
		"current": "ok",
		"description": "running on battery",
		"battery": "87%",
		"wifi": "strong"
	},
	"renderInfo": {
		"last": "2026-08-01 10:00:00",
		"current": {
			"rotated": false,
			"border": 0,
			"image": ["https://cdn.example.com/render/1.png"]
		},
		"next": {
			"battery": "2026-08-01 11:00:00",
			"power": "2026-08-01 12:00:00"
		}
	}
}`

func TestListDevices_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/authV2/open/devices" {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"series":"quote","model":"quote_0","edition":1,"id":"ABC123"}]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	devices, err := c.ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("got %d devices", len(devices))
	}
	d := devices[0]
	if d.ID != "ABC123" || d.Series != "quote" || d.Model != "quote_0" || d.Edition != 1 {
		t.Fatalf("unexpected device: %+v", d)
	}
}

func TestListDevices_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	devices, err := c.ListDevices(context.Background())
	if err != nil {
		t.Fatalf("empty account must not error: %v", err)
	}
	if len(devices) != 0 {
		t.Fatalf("got %d devices", len(devices))
	}
}

func TestGetDeviceStatus_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/authV2/open/device/ABC123/status" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, statusBody)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	status, err := c.GetDeviceStatus(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("GetDeviceStatus: %v", err)
	}
	if status.DeviceID != "ABC123" {
		t.Fatalf("deviceId=%s", status.DeviceID)
	}
	if status.Alias != nil || status.Location != nil {
		t.Fatalf("absent alias/location must stay nil: %+v", status)
	}
	if status.Status.Battery != "87%" || status.Status.Wifi != "strong" {
		t.Fatalf("battery status: %+v", status.Status)
	}
	ri := status.RenderInfo
	if ri.Last != "2026-08-01 10:00:00" || ri.Current.Border != 0 || ri.Current.Rotated {
		t.Fatalf("render info: %+v", ri)
	}
	if len(ri.Current.Image) != 1 || ri.Next.Battery == "" || ri.Next.Power == "" {
		t.Fatalf("render info: %+v", ri)
	}
}

func TestGetDeviceStatus_AliasAndLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"deviceId":"ABC123","alias":"desk","location":"office",
			"status":{"version":"1","current":"ok","description":"","battery":"90%","wifi":"ok"},
			"renderInfo":{"last":"","current":{"rotated":true,"border":1,"image":[]},"next":{"battery":"","power":""}}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	status, err := c.GetDeviceStatus(context.Background(), "ABC123")
	if err != nil {
		t.Fatal(err)
	}
	if status.Alias == nil || *status.Alias != "desk" {
		t.Fatalf("alias: %v", status.Alias)
	}
	if status.Location == nil || *status.Location != "office" {
		t.Fatalf("location: %v", status.Location)
	}
}

func TestGetDeviceStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetDeviceStatus(context.Background(), "NONEXISTENT")
	if !IsNotFoundError(err) {
		t.Fatalf("want not-found error, got %v", err)
	}
}

func TestSwitchToNext_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/authV2/open/device/ABC123/next" {
			t.Fatalf("%s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"code":0,"message":"ok","result":{}}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	resp, err := c.SwitchToNext(context.Background(), "ABC123")
	if err != nil {
		t.Fatalf("SwitchToNext: %v", err)
	}
	if !resp.Success() {
		t.Fatalf("expected success, got code=%s message=%s", resp.Code, resp.Message)
	}
	if resp.Message != "ok" {
		t.Fatalf("message=%s", resp.Message)
	}
}

func TestListTasks_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/authV2/open/device/ABC123/loop/list" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"type":"TEXT_API","key":"morning-quote","refreshNow":true,"title":"Hi","message":"Hello"},
			{"type":"IMAGE_API","key":"daily-chart","refreshNow":false,"border":1,"ditherType":"ORDERED","ditherKernel":"THRESHOLD"}
		]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	tasks, err := c.ListTasks(context.Background(), "ABC123", TaskListLoop)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks", len(tasks))
	}
	text, image := tasks[0], tasks[1]
	if text.Type != TaskTypeText || text.Key != "morning-quote" || !text.RefreshNow {
		t.Fatalf("text task: %+v", text)
	}
	if text.Title == nil || *text.Title != "Hi" || text.Border != nil {
		t.Fatalf("text task fields: %+v", text)
	}
	if image.Type != TaskTypeImage || image.Border == nil || *image.Border != BorderBlack {
		t.Fatalf("image task: %+v", image)
	}
	if image.DitherType == nil || *image.DitherType != DitherOrdered || image.Title != nil {
		t.Fatalf("image task fields: %+v", image)
	}
}

func TestListTasks_EmptyTypeDefaultsToLoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/authV2/open/device/ABC123/loop/list" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	tasks, err := c.ListTasks(context.Background(), "ABC123", "")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("got %d tasks", len(tasks))
	}
}

func TestListTasks_InvalidTypeFailsWithoutDispatch(t *testing.T) {
	dispatched := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dispatched++
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListTasks(context.Background(), "ABC123", "shuffle")
	if !IsValidationError(err) {
		t.Fatalf("want local validation error, got %v", err)
	}
	var ae *APIError
	if !errors.As(err, &ae) || ae.StatusCode != 0 {
		t.Fatalf("local precondition failure must carry no HTTP status: %v", err)
	}
	if dispatched != 0 {
		t.Fatalf("invalid task type must not hit the network, dispatched=%d", dispatched)
	}
}
