package playback

import (
	"io"
	"sync"
	"time"

	"github.com/SurajVarmaAvulamanda/Sonic-AI/speech/codec"
)

// MockDevice implements Device without touching audio hardware. Players
// simulate real-time consumption of their buffers, so completion timing
// behaves like the production device. It backs both tests and muted runs.
type MockDevice struct {
	sampleRate int
	channels   int

	mu      sync.Mutex
	players []*MockPlayer

	// ResumeErr, when set, makes every Resume fail. Simulates a suspended
	// device that platform policy refuses to restart.
	ResumeErr error

	// Counters for assertions.
	PlayersCreated int
	Resumes        int
}

// NewMockDevice creates a silent device for the given PCM format.
func NewMockDevice(sampleRate, channels int) *MockDevice {
	return &MockDevice{
		sampleRate: sampleRate,
		channels:   channels,
	}
}

func (d *MockDevice) NewPlayer(r io.Reader) Player {
	data, _ := io.ReadAll(r)

	player := &MockPlayer{
		duration: codec.Duration(len(data), d.sampleRate, d.channels, 16),
	}

	d.mu.Lock()
	d.players = append(d.players, player)
	d.PlayersCreated++
	d.mu.Unlock()

	return player
}

func (d *MockDevice) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Resumes++
	return d.ResumeErr
}

// MockPlayer simulates one playback unit: it "plays" for exactly the
// buffer's duration, then reports itself idle.
type MockPlayer struct {
	mu        sync.Mutex
	duration  time.Duration
	startedAt time.Time
	playing   bool
	closed    bool
}

func (p *MockPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.playing {
		return
	}
	p.playing = true
	p.startedAt = time.Now()
}

func (p *MockPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

func (p *MockPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || !p.playing {
		return false
	}
	return time.Since(p.startedAt) < p.duration
}

func (p *MockPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.playing = false
	return nil
}
