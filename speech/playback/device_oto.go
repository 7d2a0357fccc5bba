//go:build !nocgo
// +build !nocgo

package playback

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// systemDevice backs the Device interface with a real oto context. The
// context is created once per process and reused for every player.
type systemDevice struct {
	context *oto.Context
}

// newSystemDevice opens the platform audio output for 16-bit little-endian
// PCM at the given rate and blocks until the device reports ready.
func newSystemDevice(sampleRate, channels int) (Device, error) {
	options := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	log.Debug("initializing audio output device",
		"sample_rate", sampleRate,
		"channels", channels)

	context, ready, err := oto.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlaybackUnavailable, err)
	}
	<-ready

	return &systemDevice{context: context}, nil
}

func (d *systemDevice) NewPlayer(r io.Reader) Player {
	return d.context.NewPlayer(r)
}

func (d *systemDevice) Resume() error {
	if err := d.context.Resume(); err != nil {
		return fmt.Errorf("%w: %v", ErrPlaybackUnavailable, err)
	}
	return nil
}
