package speech

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func testPayload(pcm []byte) string {
	return base64.StdEncoding.EncodeToString(pcm)
}

func TestNewArtifact_AssignsIdentity(t *testing.T) {
	a := NewArtifact("hello", "Narrator (calm)", KindSingleSpeaker, "en-US", SynthesisParams{}, testPayload([]byte{0, 0}))
	b := NewArtifact("hello", "Narrator (calm)", KindSingleSpeaker, "en-US", SynthesisParams{}, testPayload([]byte{0, 0}))

	if a.ID == "" {
		t.Fatal("artifact created without an ID")
	}
	if a.ID == b.ID {
		t.Errorf("two artifacts share ID %s", a.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Error("artifact created without a timestamp")
	}
}

func TestArtifact_PCMIsLazyAndCached(t *testing.T) {
	pcm := []byte{0x00, 0x00, 0x00, 0x40}
	a := NewArtifact("text", "voice", KindSingleSpeaker, "en-US", SynthesisParams{}, testPayload(pcm))

	first, err := a.PCM()
	if err != nil {
		t.Fatalf("PCM failed: %v", err)
	}
	if !bytes.Equal(first, pcm) {
		t.Errorf("decoded payload mismatch: got %v, want %v", first, pcm)
	}

	second, err := a.PCM()
	if err != nil {
		t.Fatalf("second PCM call failed: %v", err)
	}
	if &first[0] != &second[0] {
		t.Error("PCM decoded twice; expected cached buffer")
	}
}

func TestArtifact_PCMWithoutPayload(t *testing.T) {
	a := NewArtifact("text", "voice", KindSingleSpeaker, "en-US", SynthesisParams{}, "")

	if a.HasPayload() {
		t.Error("HasPayload true for empty payload")
	}
	if _, err := a.PCM(); !errors.Is(err, ErrNoPayload) {
		t.Errorf("PCM on empty payload: got %v, want ErrNoPayload", err)
	}
}

func TestArtifact_ParamsSnapshot(t *testing.T) {
	params := SynthesisParams{Rate: 1.2, Pitch: -0.5, Stability: 0.8}
	a := NewArtifact("text", "voice", KindSingleSpeaker, "en-US", params, "")

	// Mutating the caller's copy must not reach the stored snapshot.
	params.Rate = 99
	if a.Params.Rate != 1.2 {
		t.Errorf("stored rate changed: got %v, want 1.2", a.Params.Rate)
	}
}

func TestArtifact_DisplayText(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"short text untouched", "hello", 10, "hello"},
		{"exact length untouched", "hello", 5, "hello"},
		{"long text truncated", "hello world", 6, "hello…"},
		{"multibyte safe", "héllo wörld", 6, "héllo…"},
		{"zero max disables truncation", "hello", 0, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArtifact(tt.text, "voice", KindSingleSpeaker, "en-US", SynthesisParams{}, "")
			if got := a.DisplayText(tt.max); got != tt.want {
				t.Errorf("DisplayText(%d): got %q, want %q", tt.max, got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if got := KindSingleSpeaker.String(); got != "single-speaker" {
		t.Errorf("KindSingleSpeaker: got %q", got)
	}
	if got := KindMultiSpeaker.String(); got != "multi-speaker" {
		t.Errorf("KindMultiSpeaker: got %q", got)
	}
}
