// Package muxer combines the rendered video-only stream with the original
// audio track by invoking the ffmpeg binary.
package muxer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/linuxmatters/jivescan/internal/config"
)

const binaryName = "ffmpeg"

// ErrMuxFailed is returned when the ffmpeg invocation exits non-zero.
var ErrMuxFailed = errors.New("muxing failed")

// FFmpeg muxes through the system ffmpeg binary.
type FFmpeg struct {
	binPath string
}

// NewFFmpeg locates ffmpeg in PATH.
func NewFFmpeg() (*FFmpeg, error) {
	path, err := exec.LookPath(binaryName)
	if err != nil {
		return nil, fmt.Errorf("%s not found in PATH: %w", binaryName, err)
	}
	return &FFmpeg{binPath: path}, nil
}

// Combine merges a video-only file with an audio file into outputPath.
// The video stream is copied as-is, the audio re-encoded to AAC, and the
// combined duration truncated to the shorter input. An existing output
// file is overwritten. Failures are reported, not retried; the video-only
// file survives for diagnosis.
func (f *FFmpeg) Combine(ctx context.Context, videoPath, audioPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, f.binPath, combineArgs(videoPath, audioPath, outputPath)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMuxFailed, stderr.String(), err)
	}

	return nil
}

// combineArgs builds the ffmpeg argument list for a video+audio merge.
func combineArgs(videoPath, audioPath, outputPath string) []string {
	return []string{
		"-i", videoPath,
		"-i", audioPath,
		"-shortest",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", config.AudioBitrate,
		"-y",
		outputPath,
	}
}
