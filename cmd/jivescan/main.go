package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/jivescan/internal/cli"
	"github.com/linuxmatters/jivescan/internal/config"
	"github.com/linuxmatters/jivescan/internal/encoder"
	"github.com/linuxmatters/jivescan/internal/muxer"
	"github.com/linuxmatters/jivescan/internal/pipeline"
	"github.com/linuxmatters/jivescan/internal/ui"
)

// version is set via ldflags at build time
// Local dev builds: "dev"
// Release builds: git tag (e.g. "v0.1.0")
var version = "dev"

var CLI struct {
	Audio      string `arg:"" name:"audio" help:"Input audio file (wav, mp3 or flac)" optional:""`
	Background string `arg:"" name:"background" help:"Background image (png or jpeg)" optional:""`
	Output     string `arg:"" name:"output" help:"Output MP4 file" optional:""`
	FPS        int    `help:"Frames per second: 10 or 15" default:"10"`
	Video      string `help:"Path for the intermediate video-only file" placeholder:"path"`
	NoUI       bool   `help:"Disable the progress display"`
	Version    bool   `help:"Show version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("jivescan"),
		kong.Description("Sweep your podcast audio into an MP4 scanner-light visualiser."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if CLI.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	// Validate required arguments when not showing version
	if CLI.Audio == "" || CLI.Background == "" || CLI.Output == "" {
		cli.PrintError("<audio>, <background> and <output> are required")
		os.Exit(1)
	}

	if err := config.ValidateFPS(CLI.FPS); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	// Validate input files exist
	for _, path := range []string{CLI.Audio, CLI.Background} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			cli.PrintError(fmt.Sprintf("input file does not exist: %s", path))
			os.Exit(1)
		}
	}

	videoPath := CLI.Video
	if videoPath == "" {
		videoPath = CLI.Output + ".video.mp4"
	}

	_ = ctx // Kong context available for future use

	generateVideo(CLI.Audio, CLI.Background, videoPath, CLI.Output, CLI.FPS, CLI.NoUI)
}

// encoderSink adapts the libav encoder to the pipeline's frame sink.
type encoderSink struct {
	enc *encoder.Encoder
}

func (s *encoderSink) WriteFrame(img *image.RGBA) error {
	return s.enc.WriteFrameRGBA(img.Pix)
}

func (s *encoderSink) Close() error {
	return s.enc.Close()
}

func newEncoderSink(videoPath string) pipeline.SinkFactory {
	return func(width, height, fps int) (pipeline.FrameSink, error) {
		enc, err := encoder.New(encoder.Config{
			OutputPath: videoPath,
			Width:      width,
			Height:     height,
			Framerate:  fps,
		})
		if err != nil {
			return nil, err
		}
		if err := enc.Initialize(); err != nil {
			return nil, err
		}
		return &encoderSink{enc: enc}, nil
	}
}

func generateVideo(audioPath, backgroundPath, videoPath, outputPath string, fps int, noUI bool) {
	mux, err := muxer.NewFFmpeg()
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	opts := pipeline.Options{
		AudioPath:      audioPath,
		BackgroundPath: backgroundPath,
		VideoPath:      videoPath,
		OutputPath:     outputPath,
		FPS:            fps,
	}

	if noUI {
		runPlain(opts, mux)
		return
	}

	model := ui.NewRenderModel()
	p := tea.NewProgram(model)

	var result *pipeline.Result
	var runErr error

	go func() {
		startTime := time.Now()

		opts.Progress = func(frame, totalFrames, level int, elapsed time.Duration) {
			p.Send(ui.RenderProgress{
				Frame:       frame,
				TotalFrames: totalFrames,
				Level:       level,
				Elapsed:     elapsed,
			})
			if frame == totalFrames {
				p.Send(ui.MuxStarted{})
			}
		}

		result, runErr = pipeline.Run(context.Background(), opts, newEncoderSink(videoPath), mux)
		if runErr != nil {
			p.Quit()
			return
		}

		var fileSize int64
		if fileInfo, err := os.Stat(outputPath); err == nil {
			fileSize = fileInfo.Size()
		}

		p.Send(ui.RenderComplete{
			OutputFile:  outputPath,
			VideoFile:   videoPath,
			TotalFrames: result.NumFrames,
			TotalTime:   time.Since(startTime),
			FileSize:    fileSize,
		})
	}()

	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("running UI: %v", err))
		os.Exit(1)
	}

	if runErr != nil {
		cli.PrintError(runErr.Error())
		os.Exit(1)
	}

	cli.PrintSuccess(fmt.Sprintf("Done! Output: %s", outputPath))
}

// runPlain executes the pipeline without the TUI, printing a line every
// second's worth of frames.
func runPlain(opts pipeline.Options, mux pipeline.Muxer) {
	opts.Progress = func(frame, totalFrames, level int, elapsed time.Duration) {
		if frame%opts.FPS == 0 || frame == totalFrames {
			fmt.Printf("\rFrame %d/%d (level %d)", frame, totalFrames, level)
		}
	}

	result, err := pipeline.Run(context.Background(), opts, newEncoderSink(opts.VideoPath), mux)
	if err != nil {
		fmt.Println()
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	fmt.Println()
	cli.PrintInfo("Frames", fmt.Sprintf("%d", result.NumFrames))
	cli.PrintInfo("Size", fmt.Sprintf("%d×%d", result.Width, result.Height))
	cli.PrintInfo("Audio", cli.FormatDuration(time.Duration(result.AudioDuration*float64(time.Second))))
	cli.PrintSuccess(fmt.Sprintf("Done! Output: %s", opts.OutputPath))
}
