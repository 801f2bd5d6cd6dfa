package audio

import (
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV writes interleaved 16-bit PCM data to a temp WAV file and
// returns its path.
func writeTestWAV(t *testing.T, sampleRate, numChannels int, data []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test WAV: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, numChannels, 1)
	buf := &goaudio.IntBuffer{
		Data: data,
		Format: &goaudio.Format{
			NumChannels: numChannels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("Failed to write test WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Failed to close test WAV: %v", err)
	}

	return path
}

func TestLoadNormalizesPeak(t *testing.T) {
	// Quarter-scale square wave: after normalization the peak must be 1.
	data := make([]int, 1000)
	for i := range data {
		if i%2 == 0 {
			data[i] = 8000
		} else {
			data[i] = -8000
		}
	}
	path := writeTestWAV(t, 44100, 1, data)

	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if rec.SampleRate != 44100 {
		t.Errorf("Expected sample rate 44100, got %d", rec.SampleRate)
	}
	if len(rec.Samples) != 1000 {
		t.Errorf("Expected 1000 samples, got %d", len(rec.Samples))
	}

	peak := 0.0
	for _, s := range rec.Samples {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}
	if math.Abs(peak-1.0) > 1e-9 {
		t.Errorf("Expected peak 1.0 after normalization, got %f", peak)
	}
}

func TestLoadRemovesDCOffset(t *testing.T) {
	// Square wave riding on a constant bias. The bias must be gone and the
	// wave symmetric afterwards.
	data := make([]int, 1000)
	for i := range data {
		if i%2 == 0 {
			data[i] = 6000
		} else {
			data[i] = 2000
		}
	}
	path := writeTestWAV(t, 44100, 1, data)

	rec, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var mean float64
	for _, s := range rec.Samples {
		mean += s
	}
	mean /= float64(len(rec.Samples))
	if math.Abs(mean) > 1e-9 {
		t.Errorf("Expected zero mean after DC removal, got %f", mean)
	}

	if math.Abs(rec.Samples[0]+rec.Samples[1]) > 1e-9 {
		t.Errorf("Expected symmetric wave after DC removal, got %f and %f",
			rec.Samples[0], rec.Samples[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.wav"))
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.ogg")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for unsupported extension, got nil")
	}
}

func TestWAVDecoderDownmixesStereo(t *testing.T) {
	// Interleaved stereo frames with distinct channel values. Each mono
	// sample must be the channel average.
	data := []int{1200, 400, -2000, -1000, 0, 3000}
	path := writeTestWAV(t, 44100, 2, data)

	dec, err := NewWAVDecoder(path)
	if err != nil {
		t.Fatalf("Failed to open WAV: %v", err)
	}
	defer dec.Close()

	if dec.NumChannels() != 2 {
		t.Errorf("Expected 2 channels, got %d", dec.NumChannels())
	}

	samples, err := dec.ReadChunk(16)
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("Expected 3 mono frames, got %d", len(samples))
	}

	maxVal := float64(goaudio.IntMaxSignedValue(16))
	expected := []float64{800 / maxVal, -1500 / maxVal, 1500 / maxVal}
	for i, want := range expected {
		if math.Abs(samples[i]-want) > 1e-9 {
			t.Errorf("Frame %d: expected %f, got %f", i, want, samples[i])
		}
	}

	if _, err := dec.ReadChunk(16); err != io.EOF {
		t.Errorf("Expected EOF after last frame, got %v", err)
	}
}

func TestRecordingDuration(t *testing.T) {
	rec := &Recording{Samples: make([]float64, 44100*2), SampleRate: 44100}
	if d := rec.Duration(); math.Abs(d-2.0) > 1e-9 {
		t.Errorf("Expected duration 2.0s, got %f", d)
	}
}
