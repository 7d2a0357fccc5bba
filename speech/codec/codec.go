// Package codec provides pure transformations between the byte and text
// representations of synthesized audio: base64 payload decoding, raw PCM
// sample interpretation, and WAV container framing.
package codec

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// Common errors for payload decoding.
var (
	ErrMalformedPayload = errors.New("payload is not valid base64")
	ErrTruncatedFrame   = errors.New("PCM byte length does not align to whole samples")
)

// DecodeBase64 decodes a standard base64 string into raw bytes.
func DecodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return data, nil
}

// ValidFrameLength checks that data can be split into whole 16-bit samples.
func ValidFrameLength(data []byte) error {
	if len(data)%2 != 0 {
		return fmt.Errorf("%w: %d bytes", ErrTruncatedFrame, len(data))
	}
	return nil
}

// BytesToSamples interprets data as 16-bit signed little-endian PCM and maps
// each sample to the normalized range [-1.0, 1.0) by dividing by 32768.
// The sample order and count (len(data)/2) are preserved; input is assumed
// mono and is never resampled.
func BytesToSamples(data []byte) ([]float64, error) {
	if err := ValidFrameLength(data); err != nil {
		return nil, err
	}

	samples := make([]float64, len(data)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float64(v) / 32768.0
	}
	return samples, nil
}

// Duration returns the play time of a PCM byte buffer.
func Duration(dataLen, sampleRate, channels, bitsPerSample int) time.Duration {
	bytesPerFrame := channels * bitsPerSample / 8
	if sampleRate <= 0 || bytesPerFrame <= 0 {
		return 0
	}
	frames := dataLen / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}
