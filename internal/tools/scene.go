package tools

import (
	"context"
	"fmt"

	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// RegisterSceneTools registers the /live/scene forwarding tools.
func RegisterSceneTools(r *Registry, client *live.Client) {
	scene := live.NewScene(client)

	sceneOnly := Schema{
		Required: []string{"scene_index"},
		Properties: map[string]Property{
			"scene_index": sceneIndexProp(),
		},
	}

	r.MustRegister(&Tool{
		Name:        "scene_fire",
		Description: "Launch (fire) a scene, triggering all clips in that row.",
		Category:    CategoryScene,
		Schema:      sceneOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			if err := scene.Fire(ctx, index); err != nil {
				return "", err
			}
			return fmt.Sprintf("Scene %d fired", index), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "scene_get_name",
		Description: "Get the name of a scene.",
		Category:    CategoryScene,
		Schema:      sceneOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			return scene.GetName(ctx, index)
		},
	})

	r.MustRegister(&Tool{
		Name:        "scene_set_name",
		Description: "Set the name of a scene.",
		Category:    CategoryScene,
		Schema: Schema{
			Required: []string{"scene_index", "name"},
			Properties: map[string]Property{
				"scene_index": sceneIndexProp(),
				"name":        stringProp("New scene name"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			index, err := intArg(args, "scene_index", 0)
			if err != nil {
				return "", err
			}
			name, err := stringArg(args, "name", "")
			if err != nil {
				return "", err
			}
			if err := scene.SetName(ctx, index, name); err != nil {
				return "", err
			}
			return fmt.Sprintf("Scene %d renamed to '%s'", index, name), nil
		},
	})
}
