//go:build nocgo
// +build nocgo

package playback

import "fmt"

// newSystemDevice is unavailable in nocgo builds; callers that still need
// playback inject NewMockDevice through Config.NewDevice.
func newSystemDevice(sampleRate, channels int) (Device, error) {
	return nil, fmt.Errorf("%w: built without audio support (nocgo)", ErrPlaybackUnavailable)
}
