package playback

import "testing"

func TestRouteButtonTable(t *testing.T) {
	tests := []struct {
		name string
		key  string
		cur  State
		want Route
	}{
		{"play from idle", KeyPlay, StateIdle, Route{KeyPlay, StatePlaying}},
		{"play while playing", KeyPlay, StatePlaying, Route{KeyPlay, StatePlaying}},
		{"play resumes from paused", KeyPlay, StatePaused, Route{KeyResume, StatePlaying}},

		{"pause while playing", KeyPause, StatePlaying, Route{KeyPause, StatePaused}},
		{"pause toggles from paused", KeyPause, StatePaused, Route{KeyResume, StatePlaying}},
		{"pause while idle", KeyPause, StateIdle, Route{KeyPause, StateIdle}},

		{"stop from playing", KeyStop, StatePlaying, Route{KeyStop, StateIdle}},
		{"stop from paused", KeyStop, StatePaused, Route{KeyStop, StateIdle}},
		{"stop from idle", KeyStop, StateIdle, Route{KeyStop, StateIdle}},

		{"rewind from idle", KeyRewind, StateIdle, Route{KeyRewind, StatePlaying}},
		{"rewind from paused", KeyRewind, StatePaused, Route{KeyRewind, StatePlaying}},
		{"fast forward from playing", KeyFastForward, StatePlaying, Route{KeyFastForward, StatePlaying}},
		{"fast forward from paused", KeyFastForward, StatePaused, Route{KeyFastForward, StatePlaying}},

		{"record passes through idle", KeyRecord, StateIdle, Route{KeyRecord, StateIdle}},
		{"record passes through playing", KeyRecord, StatePlaying, Route{KeyRecord, StatePlaying}},
		{"custom key passes through", "voice.alice", StatePaused, Route{"voice.alice", StatePaused}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RouteButton(tt.key, tt.cur); got != tt.want {
				t.Errorf("RouteButton(%q, %v) = %+v, want %+v", tt.key, tt.cur, got, tt.want)
			}
		})
	}
}

func TestRouteButtonPure(t *testing.T) {
	a := RouteButton(KeyPause, StatePlaying)
	b := RouteButton(KeyPause, StatePlaying)
	if a != b {
		t.Fatalf("same input produced %+v then %+v", a, b)
	}
}

func TestStopAlwaysIdle(t *testing.T) {
	for _, cur := range []State{StateIdle, StatePlaying, StatePaused} {
		if got := RouteButton(KeyStop, cur); got.Next != StateIdle {
			t.Errorf("stop from %v -> %v, want idle", cur, got.Next)
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateIdle, "idle"},
		{StatePlaying, "playing"},
		{StatePaused, "paused"},
		{State(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestParseStateRoundTrip(t *testing.T) {
	for _, s := range []State{StateIdle, StatePlaying, StatePaused} {
		got, ok := ParseState(s.String())
		if !ok || got != s {
			t.Errorf("ParseState(%q) = %v, %v", s.String(), got, ok)
		}
	}
	if _, ok := ParseState("buffering"); ok {
		t.Error("ParseState accepted an unknown name")
	}
}
