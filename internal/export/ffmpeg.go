package export

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CaptureOptions describes one ffmpeg capture run.
type CaptureOptions struct {
	OutputFile string
	Duration   float64 // seconds
	Device     string
	Format     string // pulse, alsa, dshow, avfoundation
	SampleRate int
	Env        map[string]string
}

// BuildArgs constructs the ffmpeg argument list for the options. Split out
// from Start so the command shape is testable without ffmpeg installed.
func BuildArgs(opts CaptureOptions) []string {
	args := []string{
		"-y",
		"-f", opts.Format,
	}

	switch opts.Format {
	case "pulse":
		args = append(args, "-i", opts.Device)
	case "alsa":
		args = append(args, "-i", "hw:"+opts.Device)
	case "dshow":
		args = append(args, "-i", "audio="+opts.Device)
	case "avfoundation":
		args = append(args, "-i", ":"+opts.Device)
	default:
		args = append(args, "-i", opts.Device)
	}

	args = append(args,
		"-t", strconv.FormatFloat(opts.Duration, 'f', -1, 64),
		"-ar", strconv.Itoa(opts.SampleRate),
		"-ac", "2",
	)

	switch strings.ToLower(filepath.Ext(opts.OutputFile)) {
	case ".mp3":
		args = append(args, "-codec:a", "libmp3lame", "-q:a", "2")
	case ".flac":
		args = append(args, "-codec:a", "flac")
	case ".ogg":
		args = append(args, "-codec:a", "libvorbis", "-q:a", "6")
	case ".m4a":
		args = append(args, "-codec:a", "aac", "-b:a", "256k")
		// .wav uses the default PCM codec
	}

	return append(args, opts.OutputFile)
}

// Recording is a running ffmpeg capture.
type Recording struct {
	cmd    *exec.Cmd
	stderr bytes.Buffer
	done   chan error
}

// Start launches ffmpeg with the given capture options.
func Start(ffmpegPath string, opts CaptureOptions, log *zap.Logger) (*Recording, error) {
	cmd := exec.Command(ffmpegPath, BuildArgs(opts)...)
	cmd.Env = os.Environ()
	for k, v := range opts.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	r := &Recording{cmd: cmd, done: make(chan error, 1)}
	cmd.Stderr = &r.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w (command: %s %s)", err, ffmpegPath, strings.Join(BuildArgs(opts), " "))
	}
	log.Info("ffmpeg capture started",
		zap.String("output", opts.OutputFile),
		zap.Float64("duration_s", opts.Duration),
		zap.String("device", opts.Device),
		zap.String("format", opts.Format))

	go func() {
		r.done <- cmd.Wait()
	}()
	return r, nil
}

// Wait blocks until ffmpeg exits or the timeout passes, in which case the
// process is killed.
func (r *Recording) Wait(timeout time.Duration) error {
	select {
	case err := <-r.done:
		if err != nil {
			return fmt.Errorf("ffmpeg failed: %w\n%s", err, r.stderr.String())
		}
		return nil
	case <-time.After(timeout):
		_ = r.cmd.Process.Kill()
		<-r.done
		return fmt.Errorf("ffmpeg timed out after %s", timeout)
	}
}
