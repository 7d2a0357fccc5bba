// Package speech holds the session-scoped model of synthesized audio:
// artifacts, their generation metadata, and the ordered vault that owns them.
package speech

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SurajVarmaAvulamanda/Sonic-AI/speech/codec"
)

// ErrNoPayload indicates an operation that needs audio data was attempted on
// an artifact whose synthesis never delivered a payload.
var ErrNoPayload = errors.New("artifact has no audio payload")

// SampleRate is the fixed rate of every payload the synthesis collaborator
// delivers: 16-bit signed little-endian mono PCM at 24 kHz.
const (
	SampleRate    = 24000
	Channels      = 1
	BitsPerSample = 16
)

// Kind distinguishes how an artifact's voice label was derived.
type Kind int

const (
	// KindSingleSpeaker is plain narration with one voice.
	KindSingleSpeaker Kind = iota
	// KindMultiSpeaker is dialogue rendered with a speaker roster.
	KindMultiSpeaker
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindSingleSpeaker:
		return "single-speaker"
	case KindMultiSpeaker:
		return "multi-speaker"
	default:
		return "unknown"
	}
}

// SynthesisParams is a snapshot of the generation knobs in effect when an
// artifact was created. It is copied by value so later adjustments never
// retroactively alter a stored artifact.
type SynthesisParams struct {
	Rate           float64
	Volume         float64
	Pitch          float64
	PauseIntensity float64
	Naturalness    float64
	Stability      float64
	Clarity        float64
}

// Artifact is one generated audio result. All fields are fixed at creation;
// the decoded PCM is materialized lazily and cached, so playback and export
// always reproduce identical audio for the artifact's entire lifetime.
type Artifact struct {
	ID         string
	SourceText string
	CreatedAt  time.Time
	VoiceLabel string
	Kind       Kind
	Language   string
	Params     SynthesisParams

	encodedPayload string

	decodeOnce sync.Once
	pcm        []byte
	pcmErr     error
}

// NewArtifact creates an artifact with a fresh ID and timestamp. payload is
// the base64-encoded raw PCM from the synthesis collaborator; it may be
// empty when synthesis failed before the payload arrived.
func NewArtifact(sourceText, voiceLabel string, kind Kind, language string, params SynthesisParams, payload string) *Artifact {
	return &Artifact{
		ID:             uuid.NewString(),
		SourceText:     sourceText,
		CreatedAt:      time.Now(),
		VoiceLabel:     voiceLabel,
		Kind:           kind,
		Language:       language,
		Params:         params,
		encodedPayload: payload,
	}
}

// HasPayload reports whether synthesis delivered an audio payload.
func (a *Artifact) HasPayload() bool {
	return a.encodedPayload != ""
}

// PCM returns the decoded raw PCM bytes, materializing them on first use.
// The result is cached: repeated calls return the same bytes and error.
func (a *Artifact) PCM() ([]byte, error) {
	a.decodeOnce.Do(func() {
		if a.encodedPayload == "" {
			a.pcmErr = ErrNoPayload
			return
		}
		a.pcm, a.pcmErr = codec.DecodeBase64(a.encodedPayload)
	})
	return a.pcm, a.pcmErr
}

// Duration returns the play time of the artifact's audio, or zero when the
// payload is missing or undecodable.
func (a *Artifact) Duration() time.Duration {
	pcm, err := a.PCM()
	if err != nil {
		return 0
	}
	return codec.Duration(len(pcm), SampleRate, Channels, BitsPerSample)
}

// DisplayText returns the source text truncated to max runes for display.
// Truncation is purely cosmetic; the stored text is untouched.
func (a *Artifact) DisplayText(max int) string {
	runes := []rune(strings.TrimSpace(a.SourceText))
	if max <= 0 || len(runes) <= max {
		return string(runes)
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
