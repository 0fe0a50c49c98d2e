package live

import "context"

// Scene wraps the /live/scene address space.
type Scene struct {
	c *Client
}

// NewScene returns a Scene facade over the client.
func NewScene(c *Client) Scene {
	return Scene{c: c}
}

func (s Scene) Fire(ctx context.Context, scene int) error {
	return s.c.Send("/live/scene/fire", scene)
}

func (s Scene) GetName(ctx context.Context, scene int) (string, error) {
	args, err := s.c.Query(ctx, "/live/scene/get/name", scene)
	if err != nil {
		return "", err
	}
	return lastString(args)
}

func (s Scene) SetName(ctx context.Context, scene int, name string) error {
	return s.c.Send("/live/scene/set/name", scene, name)
}
