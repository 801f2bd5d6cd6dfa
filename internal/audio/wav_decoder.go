package audio

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDecoder implements Decoder for WAV files.
type WAVDecoder struct {
	decoder     *wav.Decoder
	file        *os.File
	sampleRate  int
	bitDepth    int
	numChannels int
}

// NewWAVDecoder creates a streaming WAV decoder.
func NewWAVDecoder(filename string) (*WAVDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", filename)
	}

	if err := decoder.FwdToPCM(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek to PCM data: %w", err)
	}

	return &WAVDecoder{
		decoder:     decoder,
		file:        f,
		sampleRate:  int(decoder.SampleRate),
		bitDepth:    int(decoder.BitDepth),
		numChannels: int(decoder.NumChans),
	}, nil
}

// ReadChunk reads the next chunk of mono samples, averaging channels for
// multi-channel input.
func (d *WAVDecoder) ReadChunk(numSamples int) ([]float64, error) {
	// Read numSamples frames worth of interleaved data
	intBuf := &goaudio.IntBuffer{
		Data: make([]int, numSamples*d.numChannels),
		Format: &goaudio.Format{
			NumChannels: d.numChannels,
			SampleRate:  d.sampleRate,
		},
	}

	n, err := d.decoder.PCMBuffer(intBuf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}
	if n == 0 {
		return nil, io.EOF
	}

	frames := n / d.numChannels
	maxVal := float64(goaudio.IntMaxSignedValue(d.bitDepth))
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < d.numChannels; ch++ {
			sum += float64(intBuf.Data[i*d.numChannels+ch])
		}
		samples[i] = sum / (float64(d.numChannels) * maxVal)
	}

	return samples, nil
}

// SampleRate returns the sample rate.
func (d *WAVDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels in the source file.
func (d *WAVDecoder) NumChannels() int {
	return d.numChannels
}

// Close closes the underlying file.
func (d *WAVDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
