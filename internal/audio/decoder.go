package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Decoder is the interface all audio format decoders implement. Decoders
// return mono samples: multi-channel input is downmixed by channel
// averaging at read time.
type Decoder interface {
	// ReadChunk reads up to numSamples mono samples as float64 in [-1, 1].
	// Returns io.EOF when the stream is exhausted.
	ReadChunk(numSamples int) ([]float64, error)

	// SampleRate returns the audio sample rate in Hz.
	SampleRate() int

	// NumChannels returns the channel count of the source file.
	NumChannels() int

	// Close closes the decoder and releases resources.
	Close() error
}

// OpenDecoder picks a decoder based on the file extension.
func OpenDecoder(filename string) (Decoder, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return NewWAVDecoder(filename)
	case ".mp3":
		return NewMP3Decoder(filename)
	case ".flac":
		return NewFLACDecoder(filename)
	default:
		return nil, fmt.Errorf("unsupported audio format %q (supported: .wav, .mp3, .flac)", filepath.Ext(filename))
	}
}
