package playback

import (
	"bytes"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SurajVarmaAvulamanda/Sonic-AI/speech"
	"github.com/SurajVarmaAvulamanda/Sonic-AI/speech/codec"
)

// SampleBuffer is a device-ready playback unit: validated PCM bytes plus
// the timing the device needs to schedule them.
type SampleBuffer struct {
	data       []byte
	sampleRate int
	duration   time.Duration
}

// Duration returns the buffer's play time.
func (b *SampleBuffer) Duration() time.Duration { return b.duration }

// Len returns the PCM byte length.
func (b *SampleBuffer) Len() int { return len(b.data) }

// Config controls engine construction. Zero values select the 24 kHz mono
// format and the platform audio device.
type Config struct {
	SampleRate int
	Channels   int

	// NewDevice overrides device creation, e.g. with NewMockDevice for
	// tests or muted sessions.
	NewDevice func(sampleRate, channels int) (Device, error)
}

// Engine manages the process-wide output device and per-artifact playback.
// The device is created lazily on first use and reused for the life of the
// process.
type Engine struct {
	sampleRate int
	channels   int
	newDevice  func(sampleRate, channels int) (Device, error)

	mu     sync.Mutex
	device Device
	active map[string]*Handle
}

// NewEngine creates an engine. No device is opened until the first playback.
func NewEngine(cfg Config) *Engine {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = speech.SampleRate
	}
	if cfg.Channels == 0 {
		cfg.Channels = speech.Channels
	}
	if cfg.NewDevice == nil {
		cfg.NewDevice = newSystemDevice
	}
	return &Engine{
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		newDevice:  cfg.NewDevice,
		active:     make(map[string]*Handle),
	}
}

// DecodeForPlayback wraps raw PCM bytes into a schedulable buffer. The data
// is copied, so later mutation of pcm cannot affect a scheduled playback.
func (e *Engine) DecodeForPlayback(pcm []byte, sampleRate int) (*SampleBuffer, error) {
	if err := codec.ValidFrameLength(pcm); err != nil {
		return nil, err
	}

	data := make([]byte, len(pcm))
	copy(data, pcm)

	return &SampleBuffer{
		data:       data,
		sampleRate: sampleRate,
		duration:   codec.Duration(len(data), sampleRate, e.channels, speech.BitsPerSample),
	}, nil
}

// Play schedules immediate start-to-end playback of buf and returns the
// handle controlling it. The buffer plays once; there is no seeking or
// looping.
func (e *Engine) Play(buf *SampleBuffer) (*Handle, error) {
	return e.start(buf, "")
}

// PlayArtifact decodes and plays one artifact. At most one playback is
// active per artifact: starting a new one stops the previous handle first.
// Different artifacts play concurrently on independent handles.
func (e *Engine) PlayArtifact(a *speech.Artifact) (*Handle, error) {
	pcm, err := a.PCM()
	if err != nil {
		return nil, err
	}

	buf, err := e.DecodeForPlayback(pcm, speech.SampleRate)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	prev := e.active[a.ID]
	e.mu.Unlock()
	if prev != nil {
		log.Debug("stopping previous playback for artifact", "id", a.ID)
		prev.Stop()
	}

	return e.start(buf, a.ID)
}

// StopArtifact halts any active playback for the given artifact. It
// satisfies speech.PlaybackStopper so vault removal silences the artifact.
func (e *Engine) StopArtifact(id string) {
	e.mu.Lock()
	h := e.active[id]
	e.mu.Unlock()

	if h != nil {
		h.Stop()
	}
}

// StopAll halts every active playback. Call it on session teardown so no
// orphaned audio outlives its owner.
func (e *Engine) StopAll() {
	e.mu.Lock()
	handles := make([]*Handle, 0, len(e.active))
	for _, h := range e.active {
		handles = append(handles, h)
	}
	e.mu.Unlock()

	for _, h := range handles {
		h.Stop()
	}
}

// start schedules buf on the shared device and tracks the handle when it
// belongs to an artifact.
func (e *Engine) start(buf *SampleBuffer, artifactID string) (*Handle, error) {
	device, err := e.ensureDevice()
	if err != nil {
		return nil, err
	}

	// The device may have been suspended by platform power or autoplay
	// policy; bring it back before scheduling.
	if err := device.Resume(); err != nil {
		return nil, err
	}

	player := device.NewPlayer(bytes.NewReader(buf.data))
	h := newHandle(artifactID, player, buf.data, e.release)

	if artifactID != "" {
		e.mu.Lock()
		e.active[artifactID] = h
		e.mu.Unlock()
	}

	player.Play()
	h.watch()

	log.Debug("playback scheduled",
		"artifact", artifactID,
		"bytes", buf.Len(),
		"duration", buf.Duration())

	return h, nil
}

// release drops the bookkeeping for a settled handle.
func (e *Engine) release(h *Handle) {
	if h.artifactID == "" {
		return
	}
	e.mu.Lock()
	if e.active[h.artifactID] == h {
		delete(e.active, h.artifactID)
	}
	e.mu.Unlock()
}

// ensureDevice lazily opens the shared output device. It is created once
// and never torn down during normal operation.
func (e *Engine) ensureDevice() (Device, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.device != nil {
		return e.device, nil
	}

	device, err := e.newDevice(e.sampleRate, e.channels)
	if err != nil {
		return nil, err
	}
	e.device = device
	return device, nil
}
