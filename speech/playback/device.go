// Package playback owns the shared audio output device and turns decoded
// PCM buffers into schedulable, stoppable playback units.
package playback

import (
	"errors"
	"io"
)

// ErrPlaybackUnavailable indicates the output device could not be
// initialized or resumed. Vault contents are unaffected; the user may retry.
var ErrPlaybackUnavailable = errors.New("audio output device unavailable")

// Device abstracts the process-wide audio output so the engine can run
// against real hardware or a mock. Implementations mirror the subset of the
// oto context the engine needs.
type Device interface {
	// NewPlayer creates a player that consumes raw PCM from r.
	NewPlayer(r io.Reader) Player

	// Resume brings a suspended device back to the running state. Calling
	// it on a running device is a no-op.
	Resume() error
}

// Player is one scheduled playback unit on a Device.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}
