package tools

import (
	"context"
	"fmt"

	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// RegisterTrackTools registers the /live/track forwarding tools.
func RegisterTrackTools(r *Registry, client *live.Client) {
	track := live.NewTrack(client)

	trackOnly := Schema{
		Required: []string{"track_index"},
		Properties: map[string]Property{
			"track_index": trackIndexProp(),
		},
	}

	r.MustRegister(&Tool{
		Name:        "track_get_name",
		Description: "Get the name of a track.",
		Category:    CategoryTrack,
		Schema:      trackOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			return track.GetName(ctx, index)
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_set_name",
		Description: "Set the name of a track.",
		Category:    CategoryTrack,
		Schema: Schema{
			Required: []string{"track_index", "name"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
				"name":        stringProp("New track name"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			name, err := stringArg(args, "name", "")
			if err != nil {
				return "", err
			}
			if err := track.SetName(ctx, index, name); err != nil {
				return "", err
			}
			return fmt.Sprintf("Track %d renamed to '%s'", index, name), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_get_volume",
		Description: "Get the volume of a track (0.0-1.0, where 0.85 is 0dB).",
		Category:    CategoryTrack,
		Schema:      trackOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			volume, err := track.GetVolume(ctx, index)
			if err != nil {
				return "", err
			}
			return formatFloat(volume), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_set_volume",
		Description: "Set the volume of a track (0.0-1.0, where 0.85 is 0dB).",
		Category:    CategoryTrack,
		Schema: Schema{
			Required: []string{"track_index", "volume"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
				"volume":      numberProp("Volume level (0.0-1.0, where 0.85 is 0dB)"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			volume, err := floatArg(args, "volume", 0)
			if err != nil {
				return "", err
			}
			if err := track.SetVolume(ctx, index, volume); err != nil {
				return "", err
			}
			return fmt.Sprintf("Track %d volume set to %s", index, formatFloat(volume)), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_get_panning",
		Description: "Get the stereo panning of a track (-1.0 left to 1.0 right).",
		Category:    CategoryTrack,
		Schema:      trackOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			pan, err := track.GetPanning(ctx, index)
			if err != nil {
				return "", err
			}
			return formatFloat(pan), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_set_panning",
		Description: "Set the stereo panning of a track (-1.0 left to 1.0 right).",
		Category:    CategoryTrack,
		Schema: Schema{
			Required: []string{"track_index", "pan"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
				"pan":         numberProp("Panning (-1.0 full left, 0 center, 1.0 full right)"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			pan, err := floatArg(args, "pan", 0)
			if err != nil {
				return "", err
			}
			if err := track.SetPanning(ctx, index, pan); err != nil {
				return "", err
			}
			return fmt.Sprintf("Track %d panning set to %s", index, formatFloat(pan)), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_get_mute",
		Description: "Check if a track is muted.",
		Category:    CategoryTrack,
		Schema:      trackOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			muted, err := track.GetMute(ctx, index)
			if err != nil {
				return "", err
			}
			return formatBool(muted), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_set_mute",
		Description: "Mute or unmute a track.",
		Category:    CategoryTrack,
		Schema: Schema{
			Required: []string{"track_index", "muted"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
				"muted":       boolProp("True to mute, False to unmute"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			muted, err := boolArg(args, "muted", false)
			if err != nil {
				return "", err
			}
			if err := track.SetMute(ctx, index, muted); err != nil {
				return "", err
			}
			state := "unmuted"
			if muted {
				state = "muted"
			}
			return fmt.Sprintf("Track %d %s", index, state), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_get_solo",
		Description: "Check if a track is soloed.",
		Category:    CategoryTrack,
		Schema:      trackOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			soloed, err := track.GetSolo(ctx, index)
			if err != nil {
				return "", err
			}
			return formatBool(soloed), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_set_solo",
		Description: "Solo or unsolo a track.",
		Category:    CategoryTrack,
		Schema: Schema{
			Required: []string{"track_index", "soloed"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
				"soloed":      boolProp("True to solo, False to unsolo"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			soloed, err := boolArg(args, "soloed", false)
			if err != nil {
				return "", err
			}
			if err := track.SetSolo(ctx, index, soloed); err != nil {
				return "", err
			}
			state := "unsoloed"
			if soloed {
				state = "soloed"
			}
			return fmt.Sprintf("Track %d %s", index, state), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_get_arm",
		Description: "Check if a track is armed for recording.",
		Category:    CategoryTrack,
		Schema:      trackOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			armed, err := track.GetArm(ctx, index)
			if err != nil {
				return "", err
			}
			return formatBool(armed), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_set_arm",
		Description: "Arm or disarm a track for recording.",
		Category:    CategoryTrack,
		Schema: Schema{
			Required: []string{"track_index", "armed"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
				"armed":       boolProp("True to arm, False to disarm"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			armed, err := boolArg(args, "armed", false)
			if err != nil {
				return "", err
			}
			if err := track.SetArm(ctx, index, armed); err != nil {
				return "", err
			}
			state := "disarmed"
			if armed {
				state = "armed"
			}
			return fmt.Sprintf("Track %d %s", index, state), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_get_num_devices",
		Description: "Get the number of devices on a track.",
		Category:    CategoryTrack,
		Schema:      trackOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			n, err := track.GetNumDevices(ctx, index)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d", n), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "track_stop_all_clips",
		Description: "Stop all session clips on a track.",
		Category:    CategoryTrack,
		Schema:      trackOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			if err := track.StopAllClips(ctx, index); err != nil {
				return "", err
			}
			return fmt.Sprintf("Stopped all clips on track %d", index), nil
		},
	})
}
