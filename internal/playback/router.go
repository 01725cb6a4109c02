// Package playback maps toolbar buttons to command keys.
//
// The daemon has no feedback channel from the media player, so it mirrors
// state optimistically: every routed press updates the assumed state whether
// or not the launched command succeeds.
package playback

// State is the assumed player state.
type State int

const (
	StateIdle State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// ParseState is the inverse of String. Unrecognized names report ok=false.
func ParseState(name string) (State, bool) {
	switch name {
	case "idle":
		return StateIdle, true
	case "playing":
		return StatePlaying, true
	case "paused":
		return StatePaused, true
	default:
		return StateIdle, false
	}
}

// Well-known command keys. Buttons and config entries use these names;
// RouteButton also accepts arbitrary keys and passes them through.
const (
	KeyPlay        = "play"
	KeyPause       = "pause"
	KeyResume      = "resume"
	KeyStop        = "stop"
	KeyRewind      = "rewind"
	KeyFastForward = "fast_forward"
	KeyRecord      = "record"
)

// Route is the outcome of a button press: which configured command to launch
// and what state to assume afterwards.
type Route struct {
	CommandKey string
	Next       State
}

// RouteButton resolves a pressed button key against the current state.
//
// Play and pause are asymmetric on purpose: play from paused resumes, and
// pause from paused also resumes (the pause button toggles). Pause from idle
// still fires "pause" and stays idle, matching the long-standing behavior
// some player backends rely on. Seek buttons imply playback. Keys outside the
// transport set pass through with the state unchanged.
func RouteButton(key string, cur State) Route {
	switch key {
	case KeyPlay:
		if cur == StatePaused {
			return Route{CommandKey: KeyResume, Next: StatePlaying}
		}
		return Route{CommandKey: KeyPlay, Next: StatePlaying}
	case KeyPause:
		switch cur {
		case StatePlaying:
			return Route{CommandKey: KeyPause, Next: StatePaused}
		case StatePaused:
			return Route{CommandKey: KeyResume, Next: StatePlaying}
		default:
			return Route{CommandKey: KeyPause, Next: StateIdle}
		}
	case KeyStop:
		return Route{CommandKey: KeyStop, Next: StateIdle}
	case KeyRewind, KeyFastForward:
		return Route{CommandKey: key, Next: StatePlaying}
	default:
		return Route{CommandKey: key, Next: cur}
	}
}
