// Package export turns an artifact's payload into a portable WAV file.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/SurajVarmaAvulamanda/Sonic-AI/speech"
	"github.com/SurajVarmaAvulamanda/Sonic-AI/speech/codec"
)

// DefaultPrefix starts every exported filename.
const DefaultPrefix = "sonic"

// Writer produces container files from artifacts. Exporting never mutates
// the vault or the artifact; it is read-only and repeatable.
type Writer struct {
	// Prefix is the leading filename token. Empty selects DefaultPrefix.
	Prefix string
}

// Export decodes the artifact's payload and frames it as a 24 kHz mono
// 16-bit WAV. It returns the container bytes together with a suggested
// filesystem-safe filename. Artifacts without a payload fail with
// speech.ErrNoPayload.
func (w *Writer) Export(a *speech.Artifact) ([]byte, string, error) {
	pcm, err := a.PCM()
	if err != nil {
		return nil, "", err
	}

	wav := codec.EncodeWAV(pcm, speech.SampleRate, speech.Channels, speech.BitsPerSample)
	return wav, w.fileName(a), nil
}

// Save exports the artifact and writes the container file into dir,
// returning the full path.
func (w *Writer) Save(a *speech.Artifact, dir string) (string, error) {
	wav, name, err := w.Export(a)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, wav, 0o644); err != nil {
		return "", fmt.Errorf("unable to write container file: %w", err)
	}

	log.Debug("exported artifact", "id", a.ID, "path", path, "bytes", len(wav))
	return path, nil
}

// fileName derives <prefix>_<normalized-voice-label>_<epoch-millis>.wav.
func (w *Writer) fileName(a *speech.Artifact) string {
	prefix := w.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s_%s_%d.wav", prefix, normalizeToken(a.VoiceLabel), a.CreatedAt.UnixMilli())
}

// normalizeToken lower-cases s and collapses every run of non-alphanumeric
// characters into a single underscore.
func normalizeToken(s string) string {
	var b strings.Builder
	lastUnderscore := false

	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(b.String(), "_")
}
