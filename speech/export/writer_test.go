package export

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/SurajVarmaAvulamanda/Sonic-AI/speech"
)

func artifactWithSamples(t *testing.T, voiceLabel string, samples []int16) *speech.Artifact {
	t.Helper()

	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(s))
	}
	payload := base64.StdEncoding.EncodeToString(pcm)
	return speech.NewArtifact("text", voiceLabel, speech.KindSingleSpeaker, "en-US", speech.SynthesisParams{}, payload)
}

func TestWriter_ExportEndToEnd(t *testing.T) {
	samples := []int16{0, 16384, -16384, 32767}
	a := artifactWithSamples(t, "Narrator", samples)

	w := &Writer{}
	wav, name, err := w.Export(a)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if len(wav) != 52 {
		t.Fatalf("container size: got %d, want 52", len(wav))
	}

	data := wav[44:]
	for i, want := range samples {
		got := int16(binary.LittleEndian.Uint16(data[i*2:]))
		if got != want {
			t.Errorf("sample %d: got %d, want %d", i, got, want)
		}
	}

	wantName := fmt.Sprintf("sonic_narrator_%d.wav", a.CreatedAt.UnixMilli())
	if name != wantName {
		t.Errorf("filename: got %q, want %q", name, wantName)
	}
}

func TestWriter_ExportIsRepeatable(t *testing.T) {
	a := artifactWithSamples(t, "Narrator", []int16{1, 2, 3, 4})
	w := &Writer{}

	first, _, err := w.Export(a)
	if err != nil {
		t.Fatalf("first Export failed: %v", err)
	}
	second, _, err := w.Export(a)
	if err != nil {
		t.Fatalf("second Export failed: %v", err)
	}

	if string(first) != string(second) {
		t.Error("repeated exports produced different containers")
	}
}

func TestWriter_ExportWithoutPayload(t *testing.T) {
	a := speech.NewArtifact("text", "voice", speech.KindSingleSpeaker, "en-US", speech.SynthesisParams{}, "")

	w := &Writer{}
	if _, _, err := w.Export(a); !errors.Is(err, speech.ErrNoPayload) {
		t.Errorf("export without payload: got %v, want ErrNoPayload", err)
	}
}

func TestWriter_Save(t *testing.T) {
	a := artifactWithSamples(t, "Calm Voice", []int16{0, 100})
	dir := t.TempDir()

	w := &Writer{Prefix: "dialogue"}
	path, err := w.Save(a, dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("saved outside target dir: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if len(data) != 44+4 {
		t.Errorf("saved file size: got %d, want 48", len(data))
	}
}

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already clean", "narrator", "narrator"},
		{"mixed case", "Narrator", "narrator"},
		{"spaces collapse", "Calm  Narrator", "calm_narrator"},
		{"punctuation collapses", "Kore (bright) & Puck!", "kore_bright_puck"},
		{"digits kept", "Voice 2", "voice_2"},
		{"unicode collapses", "Ängström", "ngstr_m"},
		{"leading and trailing stripped", " (warm) ", "warm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeToken(tt.in); got != tt.want {
				t.Errorf("normalizeToken(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
