package tools

import (
	"context"
	"fmt"

	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// RegisterClipSlotTools registers the /live/clip_slot forwarding tools.
func RegisterClipSlotTools(r *Registry, client *live.Client) {
	clipSlot := live.NewClipSlot(client)

	slotSchema := Schema{
		Required: []string{"track_index", "scene_index"},
		Properties: map[string]Property{
			"track_index": trackIndexProp(),
			"scene_index": sceneIndexProp(),
		},
	}

	r.MustRegister(&Tool{
		Name:        "clip_slot_create_clip",
		Description: "Create a new empty MIDI clip in a clip slot.",
		Category:    CategoryClipSlot,
		Schema: Schema{
			Required: []string{"track_index", "scene_index"},
			Properties: map[string]Property{
				"track_index": trackIndexProp(),
				"scene_index": sceneIndexProp(),
				"length":      numberPropDefault("Clip length in beats (default 4.0 = 1 bar at 4/4)", 4.0),
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
			length, err := floatArg(args, "length", 4.0)
			if err != nil {
				return "", err
			}
			if err := clipSlot.CreateClip(ctx, trackIndex, sceneIndex, length); err != nil {
				return "", err
			}
			return fmt.Sprintf("Clip created at track %d, scene %d with length %s beats",
				trackIndex, sceneIndex, formatFloat(length)), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "clip_slot_delete_clip",
		Description: "Delete the clip in a clip slot.",
		Category:    CategoryClipSlot,
		Schema:      slotSchema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			if err := clipSlot.DeleteClip(ctx, trackIndex, sceneIndex); err != nil {
				return "", err
			}
			return fmt.Sprintf("Clip deleted from track %d, scene %d", trackIndex, sceneIndex), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "clip_slot_has_clip",
		Description: "Check if a clip slot contains a clip.",
		Category:    CategoryClipSlot,
		Schema:      slotSchema,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			sceneIndex, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			has, err := clipSlot.HasClip(ctx, trackIndex, sceneIndex)
			if err != nil {
				return "", err
			}
			return formatBool(has), nil
		},
	})
}
