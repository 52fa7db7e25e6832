package remote

import "github.com/openreelio/reel/pkg/playback"

// Command actions accepted from clients.
const (
	ActionPlay   = "play"
	ActionPause  = "pause"
	ActionToggle = "toggle"
	ActionSeek   = "seek"
	ActionRate   = "rate"
	ActionLoop   = "loop"
	ActionStep   = "step"
)

// Command is an inbound transport request. The bridge queues commands
// for the host loop; it never applies them from a connection goroutine,
// which keeps the clock single-threaded.
type Command struct {
	Action string `json:"action"`

	// Time is the seek target in seconds (seek).
	Time float64 `json:"time,omitempty"`

	// Rate is the playback rate (rate).
	Rate float64 `json:"rate,omitempty"`

	// Loop is the loop flag (loop).
	Loop bool `json:"loop,omitempty"`

	// FPS is the frame rate for step commands.
	FPS float64 `json:"fps,omitempty"`

	// Direction is -1 for a backward step, anything else steps forward.
	Direction int `json:"direction,omitempty"`
}

// Apply executes the command against the clock. Unknown actions are
// ignored; invalid numeric input is sanitized by the clock itself.
func (c Command) Apply(clk *playback.Clock) {
	switch c.Action {
	case ActionPlay:
		clk.Play()
	case ActionPause:
		clk.Pause()
	case ActionToggle:
		clk.TogglePlayback()
	case ActionSeek:
		clk.Seek(c.Time)
	case ActionRate:
		clk.SetPlaybackRate(c.Rate)
	case ActionLoop:
		clk.SetLoop(c.Loop)
	case ActionStep:
		if c.Direction < 0 {
			clk.StepBackward(c.FPS)
		} else {
			clk.StepForward(c.FPS)
		}
	}
}
