package tools

import (
	"context"
	"fmt"

	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// RegisterSongTools registers the /live/song forwarding tools.
func RegisterSongTools(r *Registry, client *live.Client) {
	song := live.NewSong(client)

	r.MustRegister(&Tool{
		Name:        "song_get_tempo",
		Description: "Get the current song tempo in BPM (20-999).",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			tempo, err := song.GetTempo(ctx)
			if err != nil {
				return "", err
			}
			return formatFloat(tempo), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_set_tempo",
		Description: "Set the song tempo in beats per minute (20-999).",
		Category:    CategorySong,
		Schema: Schema{
			Required: []string{"bpm"},
			Properties: map[string]Property{
				"bpm": numberProp("Tempo in beats per minute (20-999)"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			bpm, err := floatArg(args, "bpm", 0)
			if err != nil {
				return "", err
			}
			if err := song.SetTempo(ctx, bpm); err != nil {
				return "", err
			}
			return fmt.Sprintf("Tempo set to %s BPM", formatFloat(bpm)), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_play",
		Description: "Start playback.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			if err := song.StartPlaying(ctx); err != nil {
				return "", err
			}
			return "Playback started", nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_stop",
		Description: "Stop playback.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			if err := song.StopPlaying(ctx); err != nil {
				return "", err
			}
			return "Playback stopped", nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_continue",
		Description: "Continue playback from the current position.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			if err := song.ContinuePlaying(ctx); err != nil {
				return "", err
			}
			return "Playback continued", nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_get_is_playing",
		Description: "Check if the song is currently playing.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			playing, err := song.GetIsPlaying(ctx)
			if err != nil {
				return "", err
			}
			return formatBool(playing), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_get_num_tracks",
		Description: "Get the number of tracks in the song.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			n, err := song.GetNumTracks(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d", n), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_get_num_scenes",
		Description: "Get the number of scenes in the song.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			n, err := song.GetNumScenes(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d", n), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_create_midi_track",
		Description: "Create a new MIDI track at the given index (-1 appends to end).",
		Category:    CategorySong,
		Schema: Schema{
			Required: []string{},
			Properties: map[string]Property{
				"index": integerPropDefault("Position to insert track (-1 appends to end)", -1),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "index", -1)
			if err != nil {
				return "", err
			}
			if err := song.CreateMidiTrack(ctx, index); err != nil {
				return "", err
			}
			return fmt.Sprintf("MIDI track created at index %d", index), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_create_audio_track",
		Description: "Create a new audio track at the given index (-1 appends to end).",
		Category:    CategorySong,
		Schema: Schema{
			Required: []string{},
			Properties: map[string]Property{
				"index": integerPropDefault("Position to insert track (-1 appends to end)", -1),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "index", -1)
			if err != nil {
				return "", err
			}
			if err := song.CreateAudioTrack(ctx, index); err != nil {
				return "", err
			}
			return fmt.Sprintf("Audio track created at index %d", index), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_delete_track",
		Description: "Delete the track at the given index.",
		Category:    CategorySong,
		Schema: Schema{
			Required: []string{"track_index"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			if err := song.DeleteTrack(ctx, index); err != nil {
				return "", err
			}
			return fmt.Sprintf("Track %d deleted", index), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_create_scene",
		Description: "Create a new scene at the given index (-1 appends to end).",
		Category:    CategorySong,
		Schema: Schema{
			Required: []string{},
			Properties: map[string]Property{
				"index": integerPropDefault("Position to insert scene (-1 appends to end)", -1),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "index", -1)
			if err != nil {
				return "", err
			}
			if err := song.CreateScene(ctx, index); err != nil {
				return "", err
			}
			return fmt.Sprintf("Scene created at index %d", index), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_delete_scene",
		Description: "Delete the scene at the given index.",
		Category:    CategorySong,
		Schema: Schema{
			Required: []string{"scene_index"},
			Properties: map[string]Property{
				"scene_index": sceneIndexProp(),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			if err := song.DeleteScene(ctx, index); err != nil {
				return "", err
			}
			return fmt.Sprintf("Scene %d deleted", index), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_get_metronome",
		Description: "Check if the metronome is enabled.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			enabled, err := song.GetMetronome(ctx)
			if err != nil {
				return "", err
			}
			return formatBool(enabled), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_set_metronome",
		Description: "Enable or disable the metronome.",
		Category:    CategorySong,
		Schema: Schema{
			Required: []string{"enabled"},
			Properties: map[string]Property{
				"enabled": boolProp("True to enable the metronome, False to disable"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			enabled, err := boolArg(args, "enabled", false)
			if err != nil {
				return "", err
			}
			if err := song.SetMetronome(ctx, enabled); err != nil {
				return "", err
			}
			if enabled {
				return "Metronome enabled", nil
			}
			return "Metronome disabled", nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_get_record_mode",
		Description: "Check if arrangement record mode is enabled.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			enabled, err := song.GetRecordMode(ctx)
			if err != nil {
				return "", err
			}
			return formatBool(enabled), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_set_record_mode",
		Description: "Enable or disable arrangement record mode.",
		Category:    CategorySong,
		Schema: Schema{
			Required: []string{"enabled"},
			Properties: map[string]Property{
				"enabled": boolProp("True to enable recording, False to disable"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			enabled, err := boolArg(args, "enabled", false)
			if err != nil {
				return "", err
			}
			if err := song.SetRecordMode(ctx, enabled); err != nil {
				return "", err
			}
			if enabled {
				return "Record mode enabled", nil
			}
			return "Record mode disabled", nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_set_time_signature",
		Description: "Set the song time signature, e.g. 4/4 or 3/4.",
		Category:    CategorySong,
		Schema: Schema{
			Required: []string{"numerator", "denominator"},
			Properties: map[string]Property{
				"numerator":   integerProp("Time signature numerator (beats per bar)"),
				"denominator": integerProp("Time signature denominator (beat unit)"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			numerator, err := intArg(args, "numerator", 4)
			if err != nil {
				return "", err
			}
			denominator, err := intArg(args, "denominator", 4)
			if err != nil {
				return "", err
			}
			if err := song.SetSignatureNumerator(ctx, numerator); err != nil {
				return "", err
			}
			if err := song.SetSignatureDenominator(ctx, denominator); err != nil {
				return "", err
			}
			return fmt.Sprintf("Time signature set to %d/%d", numerator, denominator), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_get_current_song_time",
		Description: "Get the playhead position in beats.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			beats, err := song.GetCurrentSongTime(ctx)
			if err != nil {
				return "", err
			}
			return formatFloat(beats), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_set_current_song_time",
		Description: "Move the playhead to a position in beats.",
		Category:    CategorySong,
		Schema: Schema{
			Required: []string{"beats"},
			Properties: map[string]Property{
				"beats": numberProp("Playhead position in beats (0 = song start)"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			beats, err := floatArg(args, "beats", 0)
			if err != nil {
				return "", err
			}
			if err := song.SetCurrentSongTime(ctx, beats); err != nil {
				return "", err
			}
			return fmt.Sprintf("Playhead moved to beat %s", formatFloat(beats)), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_get_length",
		Description: "Get the arrangement length in beats.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			length, err := song.GetSongLength(ctx)
			if err != nil {
				return "", err
			}
			return formatFloat(length), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_undo",
		Description: "Undo the last action in Live.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			if err := song.Undo(ctx); err != nil {
				return "", err
			}
			return "Undo requested", nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "song_redo",
		Description: "Redo the last undone action in Live.",
		Category:    CategorySong,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			if err := song.Redo(ctx); err != nil {
				return "", err
			}
			return "Redo requested", nil
		},
	})
}
