package tools

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ldraney/ableton-mcp-server/internal/live"
	"github.com/ldraney/ableton-mcp-server/internal/songfile"
)

// playbackSettle is the pause between firing the first scene and starting
// the transport, giving Live time to queue the clips.
const playbackSettle = 100 * time.Millisecond

// RegisterExecutorTools registers the song-schema executor tools. The
// executor fires scenes in sequence with wall-clock timing so the result can
// be recorded into the arrangement view.
func RegisterExecutorTools(r *Registry, client *live.Client) {
	song := live.NewSong(client)
	scene := live.NewScene(client)

	r.MustRegister(&Tool{
		Name: "song_execute",
		Description: "Execute a song-schema file: fire scenes in sequence with correct " +
			"section timing, optionally recording to the arrangement view.",
		Category: CategoryExecutor,
		Schema: Schema{
			Required: []string{"song_path"},
			Properties: map[string]Property{
				"song_path": stringProp("Path to the song-schema file (YAML or JSON)"),
				"record":    boolPropDefault("Enable arrangement recording", true),
				"dry_run":   boolPropDefault("Just return timing info, don't execute", false),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			songPath, err := stringArg(args, "song_path", "")
			if err != nil {
				return "", err
			}
			record, err := boolArg(args, "record", true)
			if err != nil {
				return "", err
			}
			dryRun, err := boolArg(args, "dry_run", false)
			if err != nil {
				return "", err
			}
			return executeSong(ctx, song, scene, songPath, record, dryRun)
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_execute_info",
		Description: "Return the section timing of a song-schema file without executing it.",
		Category:    CategoryExecutor,
		Schema: Schema{
			Required: []string{"song_path"},
			Properties: map[string]Property{
				"song_path": stringProp("Path to the song-schema file (YAML or JSON)"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			songPath, err := stringArg(args, "song_path", "")
			if err != nil {
				return "", err
			}
			return executeSong(ctx, song, scene, songPath, false, true)
		},
	})
}

func executeSong(ctx context.Context, song live.Song, scene live.Scene, songPath string, record, dryRun bool) (string, error) {
	sf, err := songfile.Load(songPath)
	if err != nil {
		return "", err
	}

	tempo := sf.Metadata.Tempo
	timings := sf.Timings()
	totalBeats := sf.TotalBeats()
	totalSeconds := songfile.BeatsToSeconds(totalBeats, tempo)

	lines := []string{
		fmt.Sprintf("Song: %s", filepath.Base(songPath)),
		fmt.Sprintf("Tempo: %s BPM, Time Signature: %d/%d",
			formatFloat(tempo), sf.Metadata.TimeSignature.Numerator, sf.Metadata.TimeSignature.Denominator),
		fmt.Sprintf("Total: %d sections, %.0f beats, %.1f seconds", len(timings), totalBeats, totalSeconds),
		"",
		"Sections:",
	}
	for _, t := range timings {
		durSec := songfile.BeatsToSeconds(t.DurationBeats, tempo)
		lines = append(lines, fmt.Sprintf("  %d: %s (%d bars, %.1fs)", t.SceneIndex, t.Name, t.Bars, durSec))
	}

	if dryRun {
		lines = append(lines, "", "[DRY RUN] No execution performed")
		return strings.Join(lines, "\n"), nil
	}

	if err := song.SetTempo(ctx, tempo); err != nil {
		return "", err
	}
	if err := song.SetSignatureNumerator(ctx, sf.Metadata.TimeSignature.Numerator); err != nil {
		return "", err
	}
	if err := song.SetSignatureDenominator(ctx, sf.Metadata.TimeSignature.Denominator); err != nil {
		return "", err
	}
	if err := song.SetCurrentSongTime(ctx, 0); err != nil {
		return "", err
	}
	if record {
		if err := song.SetRecordMode(ctx, true); err != nil {
			return "", err
		}
	}

	lines = append(lines, "", "Executing...")

	for i, timing := range timings {
		lines = append(lines, fmt.Sprintf("  [%d/%d] %s: firing scene %d",
			i+1, len(timings), timing.Name, timing.SceneIndex))
		if err := scene.Fire(ctx, timing.SceneIndex); err != nil {
			return "", err
		}

		if i == 0 {
			if err := sleepCtx(ctx, playbackSettle); err != nil {
				return "", err
			}
			if err := song.StartPlaying(ctx); err != nil {
				return "", err
			}
		}

		wait := time.Duration(songfile.BeatsToSeconds(timing.DurationBeats, tempo) * float64(time.Second))
		if err := sleepCtx(ctx, wait); err != nil {
			// Leave the transport stopped when the host cancels mid-song.
			_ = song.StopPlaying(context.WithoutCancel(ctx))
			if record {
				_ = song.SetRecordMode(context.WithoutCancel(ctx), false)
			}
			return "", err
		}
	}

	if err := song.StopPlaying(ctx); err != nil {
		return "", err
	}
	if record {
		if err := song.SetRecordMode(ctx, false); err != nil {
			return "", err
		}
	}

	lines = append(lines, "", fmt.Sprintf("Complete! Recorded %.1f seconds to arrangement view.", totalSeconds))
	return strings.Join(lines, "\n"), nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
