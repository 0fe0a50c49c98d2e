package tools

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/ldraney/ableton-mcp-server/internal/export"
	"github.com/ldraney/ableton-mcp-server/internal/live"
)

const (
	// ffmpegSettle gives ffmpeg time to open the capture device before the
	// transport starts.
	ffmpegSettle = 500 * time.Millisecond
	// ffmpegGrace is added to the capture duration before the process is
	// killed as hung.
	ffmpegGrace = 30 * time.Second
)

// RegisterExportTools registers the audio export tools. The Live Object
// Model has no export API, so these record the system loopback device with
// ffmpeg while the transport plays.
func RegisterExportTools(r *Registry, client *live.Client, log *zap.Logger) {
	song := live.NewSong(client)

	r.MustRegister(&Tool{
		Name: "export_list_audio_devices",
		Description: "List available audio capture devices for song_export_audio. " +
			"Shows PulseAudio/ALSA devices on Linux and DirectShow devices on Windows/WSL.",
		Category: CategoryExport,
		Schema:   noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			return jsonText(export.ListDevices(ctx))
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_get_duration_seconds",
		Description: "Get the song duration in seconds, computed from arrangement length and tempo.",
		Category:    CategoryExport,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			seconds, err := songDurationSeconds(ctx, song)
			if err != nil {
				return "", err
			}
			return formatFloat(seconds), nil
		},
	})

	r.MustRegister(&Tool{
		Name: "song_export_audio",
		Description: "Export the current song to an audio file by recording system audio " +
			"with ffmpeg while Live plays. Supports .mp3, .wav, .flac, .ogg and .m4a output.",
		Category: CategoryExport,
		Schema: Schema{
			Required: []string{"output_file"},
			Properties: map[string]Property{
				"output_file":      stringProp("Output file path (e.g., '/path/to/song.mp3')"),
				"duration_seconds": numberProp("Recording duration in seconds. Defaults to the song length plus a 2s buffer."),
				"audio_device":     stringProp("Audio capture device name. Use export_list_audio_devices to see options."),
				"audio_format":     stringProp("ffmpeg input format (pulse, alsa, dshow). Auto-detected if not specified."),
				"start_playback":   boolPropDefault("Start Live playback automatically", true),
				"sample_rate":      integerPropDefault("Audio sample rate in Hz", 44100),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			outputFile, err := stringArg(args, "output_file", "")
			if err != nil {
				return "", err
			}
			duration, err := floatArg(args, "duration_seconds", 0)
			if err != nil {
				return "", err
			}
			device, err := stringArg(args, "audio_device", "")
			if err != nil {
				return "", err
			}
			format, err := stringArg(args, "audio_format", "")
			if err != nil {
				return "", err
			}
			startPlayback, err := boolArg(args, "start_playback", true)
			if err != nil {
				return "", err
			}
			sampleRate, err := intArg(args, "sample_rate", 44100)
			if err != nil {
				return "", err
			}

			if duration <= 0 {
				seconds, err := songDurationSeconds(ctx, song)
				if err != nil {
					return "", err
				}
				// Small buffer so the tail is not clipped.
				duration = seconds + 2.0
			}

			return exportAudio(ctx, song, log, exportRequest{
				OutputFile:    outputFile,
				Duration:      duration,
				Device:        device,
				Format:        format,
				SampleRate:    sampleRate,
				StartPlayback: startPlayback,
			})
		},
	})

	r.MustRegister(&Tool{
		Name: "export_test_audio_capture",
		Description: "Record system audio for a short duration without starting playback, " +
			"to verify the ffmpeg and audio device configuration.",
		Category: CategoryExport,
		Schema: Schema{
			Required: []string{"output_file"},
			Properties: map[string]Property{
				"output_file":      stringProp("Output file path for the test recording"),
				"duration_seconds": numberPropDefault("Test recording duration in seconds", 5.0),
				"audio_device":     stringProp("Audio device to test (auto-detected if not specified)"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			outputFile, err := stringArg(args, "output_file", "")
			if err != nil {
				return "", err
			}
			duration, err := floatArg(args, "duration_seconds", 5.0)
			if err != nil {
				return "", err
			}
			device, err := stringArg(args, "audio_device", "")
			if err != nil {
				return "", err
			}

			return exportAudio(ctx, song, log, exportRequest{
				OutputFile:    outputFile,
				Duration:      duration,
				Device:        device,
				SampleRate:    44100,
				StartPlayback: false,
			})
		},
	})
}

type exportRequest struct {
	OutputFile    string
	Duration      float64
	Device        string
	Format        string
	SampleRate    int
	StartPlayback bool
}

func songDurationSeconds(ctx context.Context, song live.Song) (float64, error) {
	lengthBeats, err := song.GetSongLength(ctx)
	if err != nil {
		return 0, err
	}
	tempo, err := song.GetTempo(ctx)
	if err != nil {
		return 0, err
	}
	return lengthBeats / tempo * 60, nil
}

func exportAudio(ctx context.Context, song live.Song, log *zap.Logger, req exportRequest) (string, error) {
	if !export.SupportedExtension(req.OutputFile) {
		return "", fmt.Errorf("unsupported output format for %s: use .mp3, .wav, .flac, .ogg, or .m4a", req.OutputFile)
	}

	ffmpegPath, err := export.FindFFmpeg()
	if err != nil {
		return "", err
	}

	env := map[string]string{}
	if req.Device == "" || req.Format == "" {
		defaultDevice, defaultFormat, defaultEnv, err := export.DefaultDevice()
		if err != nil {
			return "", err
		}
		env = defaultEnv
		if req.Device == "" {
			req.Device = defaultDevice
		}
		if req.Format == "" {
			req.Format = defaultFormat
		}
	}

	recording, err := export.Start(ffmpegPath, export.CaptureOptions{
		OutputFile: req.OutputFile,
		Duration:   req.Duration,
		Device:     req.Device,
		Format:     req.Format,
		SampleRate: req.SampleRate,
		Env:        env,
	}, log)
	if err != nil {
		return "", err
	}

	if err := sleepCtx(ctx, ffmpegSettle); err != nil {
		_ = recording.Wait(0)
		return "", err
	}

	if req.StartPlayback {
		if err := song.SetCurrentSongTime(ctx, 0); err != nil {
			_ = recording.Wait(0)
			return "", err
		}
		if err := sleepCtx(ctx, playbackSettle); err != nil {
			_ = recording.Wait(0)
			return "", err
		}
		if err := song.StartPlaying(ctx); err != nil {
			_ = recording.Wait(0)
			return "", err
		}
	}

	waitErr := recording.Wait(time.Duration(req.Duration)*time.Second + ffmpegGrace)

	if req.StartPlayback {
		if stopErr := song.StopPlaying(context.WithoutCancel(ctx)); stopErr != nil && waitErr == nil {
			waitErr = stopErr
		}
	}
	if waitErr != nil {
		return "", waitErr
	}

	info, err := os.Stat(req.OutputFile)
	if err != nil {
		return "", fmt.Errorf("ffmpeg completed but output file not found: %s", req.OutputFile)
	}
	return fmt.Sprintf("Successfully exported to %s (%.1f KB, %.1fs)",
		req.OutputFile, float64(info.Size())/1024, req.Duration), nil
}
