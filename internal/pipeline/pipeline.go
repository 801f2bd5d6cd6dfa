// Package pipeline runs the full recording-to-video sequence: preprocess
// the audio, analyze per-frame energy, quantize to activity levels, render
// each level onto the background, and hand the result to the muxer.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/linuxmatters/jivescan/internal/audio"
	"github.com/linuxmatters/jivescan/internal/config"
	"github.com/linuxmatters/jivescan/internal/energy"
	"github.com/linuxmatters/jivescan/internal/renderer"
)

// FrameSink accepts rendered frames in presentation order and must be
// closed to finalize the container.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

// SinkFactory creates a sink once the frame dimensions are known.
type SinkFactory func(width, height, fps int) (FrameSink, error)

// Muxer combines a video-only file with an audio file into the final
// output.
type Muxer interface {
	Combine(ctx context.Context, videoPath, audioPath, outputPath string) error
}

// ProgressFunc is called after each rendered frame.
type ProgressFunc func(frame, totalFrames, level int, elapsed time.Duration)

// Options configures a pipeline run.
type Options struct {
	AudioPath      string
	BackgroundPath string
	VideoPath      string // intermediate video-only file
	OutputPath     string // final muxed output
	FPS            int
	Progress       ProgressFunc
}

// Result summarizes a completed run.
type Result struct {
	NumFrames     int
	Width         int
	Height        int
	AudioDuration float64 // seconds
}

// Run executes the pipeline. The frame rate is validated before any
// decoding or rendering work. Frame i corresponds to the audio window
// starting at i*(1000/FPS) ms, so sink writes happen strictly in level
// order. The sink is closed even on early error paths; mux failures are
// reported after the video-only file has been written.
func Run(ctx context.Context, opts Options, newSink SinkFactory, mux Muxer) (*Result, error) {
	if err := config.ValidateFPS(opts.FPS); err != nil {
		return nil, err
	}

	rec, err := audio.Load(opts.AudioPath)
	if err != nil {
		return nil, err
	}

	energies := energy.Analyze(rec.Samples, rec.SampleRate, opts.FPS)
	levels, err := energy.Quantize(energies, opts.FPS)
	if err != nil {
		return nil, err
	}

	bg, err := renderer.LoadBackground(opts.BackgroundPath)
	if err != nil {
		return nil, err
	}

	width := bg.Bounds().Dx()
	height := bg.Bounds().Dy()

	sink, err := newSink(width, height, opts.FPS)
	if err != nil {
		return nil, fmt.Errorf("failed to create video sink: %w", err)
	}
	closed := false
	defer func() {
		if !closed {
			sink.Close()
		}
	}()

	frame := renderer.NewFrame(bg, renderer.DefaultGeometry(width, height))
	startTime := time.Now()

	for i, level := range levels {
		frame.Draw(level)
		if err := sink.WriteFrame(frame.Image()); err != nil {
			return nil, fmt.Errorf("failed to write frame %d: %w", i, err)
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(levels), level, time.Since(startTime))
		}
	}

	if err := sink.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize video: %w", err)
	}
	closed = true

	result := &Result{
		NumFrames:     len(levels),
		Width:         width,
		Height:        height,
		AudioDuration: rec.Duration(),
	}

	if err := mux.Combine(ctx, opts.VideoPath, opts.AudioPath, opts.OutputPath); err != nil {
		return result, err
	}

	return result, nil
}
