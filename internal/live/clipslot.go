package live

import "context"

// ClipSlot wraps the /live/clip_slot address space. Slots are addressed by
// (track, scene) index pairs.
type ClipSlot struct {
	c *Client
}

// NewClipSlot returns a ClipSlot facade over the client.
func NewClipSlot(c *Client) ClipSlot {
	return ClipSlot{c: c}
}

// CreateClip creates an empty MIDI clip of the given length in beats.
func (cs ClipSlot) CreateClip(ctx context.Context, track, scene int, length float64) error {
	return cs.c.Send("/live/clip_slot/create_clip", track, scene, length)
}

func (cs ClipSlot) DeleteClip(ctx context.Context, track, scene int) error {
	return cs.c.Send("/live/clip_slot/delete_clip", track, scene)
}

func (cs ClipSlot) HasClip(ctx context.Context, track, scene int) (bool, error) {
	args, err := cs.c.Query(ctx, "/live/clip_slot/get/has_clip", track, scene)
	if err != nil {
		return false, err
	}
	return lastBool(args)
}
