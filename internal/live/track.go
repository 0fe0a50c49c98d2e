package live

import "context"

// Track wraps the /live/track address space. Every call takes the 0-based
// track index; replies echo the index back, the value sits last.
type Track struct {
	c *Client
}

// NewTrack returns a Track facade over the client.
func NewTrack(c *Client) Track {
	return Track{c: c}
}

func (t Track) GetName(ctx context.Context, track int) (string, error) {
	args, err := t.c.Query(ctx, "/live/track/get/name", track)
	if err != nil {
		return "", err
	}
	return lastString(args)
}

func (t Track) SetName(ctx context.Context, track int, name string) error {
	return t.c.Send("/live/track/set/name", track, name)
}

func (t Track) GetVolume(ctx context.Context, track int) (float64, error) {
	args, err := t.c.Query(ctx, "/live/track/get/volume", track)
	if err != nil {
		return 0, err
	}
	return lastFloat(args)
}

// SetVolume sets mixer volume, 0.0-1.0 where 0.85 is 0dB.
func (t Track) SetVolume(ctx context.Context, track int, volume float64) error {
	return t.c.Send("/live/track/set/volume", track, volume)
}

func (t Track) GetPanning(ctx context.Context, track int) (float64, error) {
	args, err := t.c.Query(ctx, "/live/track/get/panning", track)
	if err != nil {
		return 0, err
	}
	return lastFloat(args)
}

// SetPanning sets stereo panning, -1.0 (left) to 1.0 (right).
func (t Track) SetPanning(ctx context.Context, track int, pan float64) error {
	return t.c.Send("/live/track/set/panning", track, pan)
}

func (t Track) GetMute(ctx context.Context, track int) (bool, error) {
	args, err := t.c.Query(ctx, "/live/track/get/mute", track)
	if err != nil {
		return false, err
	}
	return lastBool(args)
}

func (t Track) SetMute(ctx context.Context, track int, muted bool) error {
	return t.c.Send("/live/track/set/mute", track, muted)
}

func (t Track) GetSolo(ctx context.Context, track int) (bool, error) {
	args, err := t.c.Query(ctx, "/live/track/get/solo", track)
	if err != nil {
		return false, err
	}
	return lastBool(args)
}

func (t Track) SetSolo(ctx context.Context, track int, soloed bool) error {
	return t.c.Send("/live/track/set/solo", track, soloed)
}

func (t Track) GetArm(ctx context.Context, track int) (bool, error) {
	args, err := t.c.Query(ctx, "/live/track/get/arm", track)
	if err != nil {
		return false, err
	}
	return lastBool(args)
}

func (t Track) SetArm(ctx context.Context, track int, armed bool) error {
	return t.c.Send("/live/track/set/arm", track, armed)
}

func (t Track) GetNumDevices(ctx context.Context, track int) (int, error) {
	args, err := t.c.Query(ctx, "/live/track/get/num_devices", track)
	if err != nil {
		return 0, err
	}
	return lastInt(args)
}

func (t Track) StopAllClips(ctx context.Context, track int) error {
	return t.c.Send("/live/track/stop_all_clips", track)
}
