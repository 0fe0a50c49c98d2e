package tools

import (
	"context"
	"fmt"

	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// RegisterClipTools registers the /live/clip forwarding tools.
func RegisterClipTools(r *Registry, client *live.Client) {
	clip := live.NewClip(client)

	clipSchema := Schema{
		Required: []string{"track_index", "scene_index"},
		Properties: map[string]Property{
			"track_index": trackIndexProp(),
			"scene_index": sceneIndexProp(),
		},
	}

	r.MustRegister(&Tool{
		Name:        "clip_fire",
		Description: "Launch (fire) a clip.",
		Category:    CategoryClip,
		Schema:      clipSchema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			if err := clip.Fire(ctx, trackIndex, sceneIndex); err != nil {
				return "", err
			}
			return fmt.Sprintf("Clip fired at track %d, scene %d", trackIndex, sceneIndex), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "clip_stop",
		Description: "Stop a clip.",
		Category:    CategoryClip,
		Schema:      clipSchema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			if err := clip.Stop(ctx, trackIndex, sceneIndex); err != nil {
				return "", err
			}
			return fmt.Sprintf("Clip stopped at track %d, scene %d", trackIndex, sceneIndex), nil
		},
	})

	r.MustRegister(&Tool{
		Name: "clip_add_notes",
		Description: "Add MIDI notes to a clip. Each note is an object with pitch (0-127), " +
			"start_time (beats), duration (beats), velocity (0-127) and an optional mute flag.",
		Category: CategoryClip,
		Schema: Schema{
			Required: []string{"track_index", "scene_index", "notes"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
				"scene_index": sceneIndexProp(),
				"notes": {
					Type:        "array",
					Description: "List of notes, each with pitch (0-127), start_time (beats), duration (beats), velocity (0-127)",
					Items:       &PropertyItems{Type: "object"},
				},
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			notes, err := notesArg(args, "notes")
			if err != nil {
				return "", err
			}
			if err := clip.AddNotes(ctx, trackIndex, sceneIndex, notes); err != nil {
				return "", err
			}
			return fmt.Sprintf("Added %d notes to clip at track %d, scene %d",
				len(notes), trackIndex, sceneIndex), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "clip_get_notes",
		Description: "Get all MIDI notes from a clip.",
		Category:    CategoryClip,
		Schema:      clipSchema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			notes, err := clip.GetNotes(ctx, trackIndex, sceneIndex)
			if err != nil {
				return "", err
			}
			return jsonText(notes)
		},
	})

	r.MustRegister(&Tool{
		Name:        "clip_remove_notes",
		Description: "Remove all MIDI notes from a clip.",
		Category:    CategoryClip,
		Schema:      clipSchema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			if err := clip.RemoveNotes(ctx, trackIndex, sceneIndex); err != nil {
				return "", err
			}
			return fmt.Sprintf("Removed notes from clip at track %d, scene %d", trackIndex, sceneIndex), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "clip_get_name",
		Description: "Get the name of a clip.",
		Category:    CategoryClip,
		Schema:      clipSchema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			return clip.GetName(ctx, trackIndex, sceneIndex)
		},
	})

	r.MustRegister(&Tool{
		Name:        "clip_set_name",
		Description: "Set the name of a clip.",
		Category:    CategoryClip,
		Schema: Schema{
			Required: []string{"track_index", "scene_index", "name"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
				"scene_index": sceneIndexProp(),
				"name":        stringProp("New clip name"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			name, err := stringArg(args, "name", "")
			if err != nil {
				return "", err
			}
			if err := clip.SetName(ctx, trackIndex, sceneIndex, name); err != nil {
				return "", err
			}
			return fmt.Sprintf("Clip at track %d, scene %d renamed to '%s'", trackIndex, sceneIndex, name), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "clip_get_length",
		Description: "Get the length of a clip in beats.",
		Category:    CategoryClip,
		Schema:      clipSchema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			length, err := clip.GetLength(ctx, trackIndex, sceneIndex)
			if err != nil {
				return "", err
			}
			return formatFloat(length), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "clip_get_looping",
		Description: "Check if a clip is looping.",
		Category:    CategoryClip,
		Schema:      clipSchema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			looping, err := clip.GetLooping(ctx, trackIndex, sceneIndex)
			if err != nil {
				return "", err
			}
			return formatBool(looping), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "clip_set_looping",
		Description: "Enable or disable looping on a clip.",
		Category:    CategoryClip,
		Schema: Schema{
			Required: []string{"track_index", "scene_index", "looping"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
				"scene_index": sceneIndexProp(),
				"looping":     boolProp("True to loop, False to play once"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			looping, err := boolArg(args, "looping", false)
			if err != nil {
				return "", err
			}
			if err := clip.SetLooping(ctx, trackIndex, sceneIndex, looping); err != nil {
				return "", err
			}
			state := "no longer looping"
			if looping {
				state = "looping"
			}
			return fmt.Sprintf("Clip at track %d, scene %d is %s", trackIndex, sceneIndex, state), nil
		},
	})
}
