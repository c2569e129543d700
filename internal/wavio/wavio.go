// Package wavio reads and writes PCM WAV files as normalized amplitudes.
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-dsp/dsp/core"
	"github.com/cwbudde/algo-dsp/dsp/signal"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	pcmFormat = 1
	toneHz    = 440
	toneDepth = 16
)

var (
	ErrInvalidFile       = errors.New("invalid wav file")
	ErrUnsupportedFormat = errors.New("unsupported wav format")
)

// Audio holds interleaved samples scaled to [-1, 1] together with the format
// needed to write them back.
type Audio struct {
	Amplitudes []float64
	Channels   int
	SampleRate int
	BitDepth   int
}

// Samples returns the number of samples over all channels.
func (a *Audio) Samples() int {
	return len(a.Amplitudes)
}

// WithAmplitudes returns a copy of a in the same format carrying amps.
func (a *Audio) WithAmplitudes(amps []float64) *Audio {
	b := *a
	b.Amplitudes = amps
	return &b
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return float64(int64(1)<<(bitDepth-1) - 1), nil
	}
	return 0, fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, bitDepth)
}

// Read decodes the PCM WAV file at path.
func Read(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	bitDepth := int(dec.BitDepth)
	scale, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	amps := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		amps[i] = float64(v) / scale
	}
	return &Audio{
		Amplitudes: amps,
		Channels:   int(dec.NumChans),
		SampleRate: int(dec.SampleRate),
		BitDepth:   bitDepth,
	}, nil
}

// Write encodes a to path. Amplitudes are clamped to [-1, 1] and truncated
// toward zero when quantized.
func Write(path string, a *Audio) error {
	scale, err := fullScale(a.BitDepth)
	if err != nil {
		return err
	}
	data := make([]int, len(a.Amplitudes))
	for i, v := range a.Amplitudes {
		data[i] = int(math.Max(-1, math.Min(1, v)) * scale)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := wav.NewEncoder(f, a.SampleRate, a.BitDepth, a.Channels, pcmFormat)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: a.Channels, SampleRate: a.SampleRate},
		SourceBitDepth: a.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

// Sine returns a 16-bit 440 Hz full-scale tone lasting duration seconds.
// Every channel carries the same signal.
func Sine(duration float64, channels, sampleRate int) (*Audio, error) {
	if channels <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedFormat, channels, sampleRate)
	}
	frames := int(float64(sampleRate) * duration)
	gen := signal.NewGenerator(core.WithSampleRate(float64(sampleRate)))
	tone, err := gen.Sine(toneHz, 1, frames)
	if err != nil {
		return nil, err
	}
	amps := make([]float64, 0, frames*channels)
	for _, v := range tone {
		for range channels {
			amps = append(amps, v)
		}
	}
	return &Audio{
		Amplitudes: amps,
		Channels:   channels,
		SampleRate: sampleRate,
		BitDepth:   toneDepth,
	}, nil
}

// GenerateSine writes the tone produced by Sine to path.
func GenerateSine(path string, duration float64, channels, sampleRate int) error {
	a, err := Sine(duration, channels, sampleRate)
	if err != nil {
		return err
	}
	return Write(path, a)
}
