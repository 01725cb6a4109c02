package ipc

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/1broseidon/floatbar/internal/playback"
	"github.com/1broseidon/floatbar/internal/toolbar"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"command":"PRESS","payload":{"key":"play"}}` + "\n"))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.Command != CommandPress {
		t.Fatalf("Command = %q", req.Command)
	}
	var press PressPayload
	if err := json.Unmarshal(req.Payload, &press); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if press.Key != "play" {
		t.Fatalf("Key = %q", press.Key)
	}
}

func TestParseRequestRejectsGarbage(t *testing.T) {
	if _, err := ParseRequest([]byte("not json\n")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResponseRoundTrip(t *testing.T) {
	resp, err := NewOKResponse(StatusData{PlaybackState: "playing", DaemonRunning: true})
	if err != nil {
		t.Fatalf("NewOKResponse: %v", err)
	}
	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Response
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Status != "OK" {
		t.Fatalf("Status = %q", decoded.Status)
	}
	var status StatusData
	if err := json.Unmarshal(decoded.Data, &status); err != nil {
		t.Fatalf("data: %v", err)
	}
	if status.PlaybackState != "playing" || !status.DaemonRunning {
		t.Fatalf("status = %+v", status)
	}
}

func TestErrorResponse(t *testing.T) {
	resp := NewErrorResponse("boom")
	if resp.Status != "ERROR" || resp.Error != "boom" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestStatusFromController(t *testing.T) {
	st := toolbar.Status{
		State:    playback.StatePaused,
		X:        12,
		Y:        34,
		Visible:  true,
		Expanded: true,
		Voice:    "alice",
		Speed:    "1.5",
		Started:  time.Now().Add(-90 * time.Second),
	}
	got := StatusFromController(st)
	if got.PlaybackState != "paused" {
		t.Errorf("PlaybackState = %q", got.PlaybackState)
	}
	if got.X != 12 || got.Y != 34 || !got.Visible || !got.PanelExpanded {
		t.Errorf("geometry/state fields wrong: %+v", got)
	}
	if got.UptimeSeconds < 89 || got.UptimeSeconds > 91 {
		t.Errorf("UptimeSeconds = %d", got.UptimeSeconds)
	}
	if !got.DaemonRunning {
		t.Error("DaemonRunning = false")
	}
}
