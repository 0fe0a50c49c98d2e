package tools

import (
	"context"
	"fmt"

	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// RegisterViewTools registers the /live/view forwarding tools.
func RegisterViewTools(r *Registry, client *live.Client) {
	view := live.NewView(client)

	r.MustRegister(&Tool{
		Name:        "view_get_selected_track",
		Description: "Get the index of the currently selected track.",
		Category:    CategoryView,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := view.GetSelectedTrack(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d", index), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "view_set_selected_track",
		Description: "Select a track in the Live UI.",
		Category:    CategoryView,
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
			if err := view.SetSelectedTrack(ctx, index); err != nil {
				return "", err
			}
			return fmt.Sprintf("Track %d selected", index), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "view_get_selected_scene",
		Description: "Get the index of the currently selected scene.",
		Category:    CategoryView,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := view.GetSelectedScene(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d", index), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "view_set_selected_scene",
		Description: "Select a scene in the Live UI.",
		Category:    CategoryView,
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
			if err := view.SetSelectedScene(ctx, index); err != nil {
				return "", err
			}
			return fmt.Sprintf("Scene %d selected", index), nil
		},
	})
}
