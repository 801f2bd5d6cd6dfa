package encoder

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		config Config
	}{
		{"zero width", Config{OutputPath: "out.mp4", Width: 0, Height: 480, Framerate: 10}},
		{"negative height", Config{OutputPath: "out.mp4", Width: 640, Height: -480, Framerate: 10}},
		{"odd width", Config{OutputPath: "out.mp4", Width: 641, Height: 480, Framerate: 10}},
		{"odd height", Config{OutputPath: "out.mp4", Width: 640, Height: 479, Framerate: 10}},
		{"zero framerate", Config{OutputPath: "out.mp4", Width: 640, Height: 480, Framerate: 0}},
		{"empty output path", Config{Width: 640, Height: 480, Framerate: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.config); err == nil {
				t.Errorf("Expected error for %s, got nil", tc.name)
			}
		})
	}
}

func TestEncoderWritesFrames(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "scan.mp4")

	config := Config{
		OutputPath: outputPath,
		Width:      640,
		Height:     480,
		Framerate:  10,
	}

	enc, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create encoder: %v", err)
	}

	if err := enc.Initialize(); err != nil {
		t.Fatalf("Failed to initialize encoder: %v", err)
	}
	defer enc.Close()

	// A few solid red RGBA frames
	frame := make([]byte, config.Width*config.Height*4)
	for i := 0; i < len(frame); i += 4 {
		frame[i] = 200
		frame[i+3] = 255
	}

	for i := 0; i < 10; i++ {
		if err := enc.WriteFrameRGBA(frame); err != nil {
			t.Fatalf("Failed to write frame %d: %v", i, err)
		}
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("Failed to close encoder: %v", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		t.Fatalf("Output file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("Output file is empty")
	}

	t.Logf("Successfully created video: %s (%d bytes)", outputPath, info.Size())
}

func TestWriteFrameRejectsWrongSize(t *testing.T) {
	enc, err := New(Config{OutputPath: "out.mp4", Width: 640, Height: 480, Framerate: 10})
	if err != nil {
		t.Fatalf("Failed to create encoder: %v", err)
	}

	if err := enc.WriteFrameRGBA(make([]byte, 100)); err == nil {
		t.Error("Expected error for undersized RGBA frame, got nil")
	}
	if err := enc.WriteFrame(make([]byte, 100)); err == nil {
		t.Error("Expected error for undersized RGB frame, got nil")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	enc, err := New(Config{OutputPath: "out.mp4", Width: 640, Height: 480, Framerate: 10})
	if err != nil {
		t.Fatalf("Failed to create encoder: %v", err)
	}

	if err := enc.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}
