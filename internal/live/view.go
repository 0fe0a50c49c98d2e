package live

import "context"

// View wraps the /live/view address space: the selection state of the
// Live UI.
type View struct {
	c *Client
}

// NewView returns a View facade over the client.
func NewView(c *Client) View {
	return View{c: c}
}

func (v View) GetSelectedTrack(ctx context.Context) (int, error) {
	args, err := v.c.Query(ctx, "/live/view/get/selected_track")
	if err != nil {
		return 0, err
	}
	return firstInt(args)
}

func (v View) SetSelectedTrack(ctx context.Context, track int) error {
	return v.c.Send("/live/view/set/selected_track", track)
}

func (v View) GetSelectedScene(ctx context.Context) (int, error) {
	args, err := v.c.Query(ctx, "/live/view/get/selected_scene")
	if err != nil {
		return 0, err
	}
	return firstInt(args)
}

func (v View) SetSelectedScene(ctx context.Context, scene int) error {
	return v.c.Send("/live/view/set/selected_scene", scene)
}
