package playback

import (
	"sync"
	"sync/atomic"
	"time"
)

// pollInterval is how often a handle checks the device for end-of-buffer.
const pollInterval = 10 * time.Millisecond

// Handle is an ephemeral reference to one in-flight playback unit. Done
// closes exactly once on natural end-of-buffer; an explicit Stop suppresses
// it. Handles are owned by whoever started the playback and are discarded
// once it ends.
type Handle struct {
	artifactID string
	player     Player
	data       []byte // keeps the PCM alive for the life of the playback

	done    chan struct{}
	quit    chan struct{}
	stopped atomic.Bool

	settleOnce sync.Once
	release    func(*Handle)
}

func newHandle(artifactID string, player Player, data []byte, release func(*Handle)) *Handle {
	h := &Handle{
		artifactID: artifactID,
		player:     player,
		data:       data,
		done:       make(chan struct{}),
		quit:       make(chan struct{}),
		release:    release,
	}
	return h
}

// watch starts end-of-buffer monitoring. The engine calls it after the
// device player has begun consuming the buffer.
func (h *Handle) watch() {
	go h.monitor()
}

// Done returns a channel that closes when playback reaches the natural end
// of the buffer. It never closes for a stopped handle; the caller that
// issued the Stop does its own cleanup.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Stop halts output immediately. It is idempotent: stopping an
// already-stopped or already-finished handle is a no-op.
func (h *Handle) Stop() {
	h.settle(false)
}

// Stopped reports whether the handle was halted before natural completion.
func (h *Handle) Stopped() bool {
	return h.stopped.Load()
}

// ArtifactID identifies the artifact this playback belongs to.
func (h *Handle) ArtifactID() string {
	return h.artifactID
}

// settle finishes the handle exactly once, from either direction.
func (h *Handle) settle(natural bool) {
	h.settleOnce.Do(func() {
		if !natural {
			h.stopped.Store(true)
		}
		h.player.Pause()
		_ = h.player.Close()
		if h.release != nil {
			h.release(h)
		}
		if natural {
			close(h.done)
		}
		close(h.quit)
	})
}

// monitor watches for end-of-buffer. The device drains the player on its
// own; once it reports idle the playback completed naturally.
func (h *Handle) monitor() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.quit:
			return
		case <-ticker.C:
			if !h.player.IsPlaying() {
				h.settle(true)
				return
			}
		}
	}
}
