package live

import (
	"context"
	"fmt"
)

// Note is a single MIDI note inside a clip. Times are in beats.
type Note struct {
	Pitch     int     `json:"pitch"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
	Velocity  int     `json:"velocity"`
	Mute      bool    `json:"mute"`
}

// noteFieldCount is the per-note argument count on the wire:
// pitch, start_time, duration, velocity, mute.
const noteFieldCount = 5

// Clip wraps the /live/clip address space. Clips are addressed by
// (track, scene) index pairs.
type Clip struct {
	c *Client
}

// NewClip returns a Clip facade over the client.
func NewClip(c *Client) Clip {
	return Clip{c: c}
}

func (cl Clip) Fire(ctx context.Context, track, scene int) error {
	return cl.c.Send("/live/clip/fire", track, scene)
}

func (cl Clip) Stop(ctx context.Context, track, scene int) error {
	return cl.c.Send("/live/clip/stop", track, scene)
}

func (cl Clip) GetName(ctx context.Context, track, scene int) (string, error) {
	args, err := cl.c.Query(ctx, "/live/clip/get/name", track, scene)
	if err != nil {
		return "", err
	}
	return lastString(args)
}

func (cl Clip) SetName(ctx context.Context, track, scene int, name string) error {
	return cl.c.Send("/live/clip/set/name", track, scene, name)
}

func (cl Clip) GetLength(ctx context.Context, track, scene int) (float64, error) {
	args, err := cl.c.Query(ctx, "/live/clip/get/length", track, scene)
	if err != nil {
		return 0, err
	}
	return lastFloat(args)
}

func (cl Clip) GetLooping(ctx context.Context, track, scene int) (bool, error) {
	args, err := cl.c.Query(ctx, "/live/clip/get/looping", track, scene)
	if err != nil {
		return false, err
	}
	return lastBool(args)
}

func (cl Clip) SetLooping(ctx context.Context, track, scene int, looping bool) error {
	return cl.c.Send("/live/clip/set/looping", track, scene, looping)
}

// AddNotes appends MIDI notes to the clip in a single message.
func (cl Clip) AddNotes(ctx context.Context, track, scene int, notes []Note) error {
	args := make([]interface{}, 0, 2+len(notes)*noteFieldCount)
	args = append(args, track, scene)
	for _, n := range notes {
		args = append(args, n.Pitch, n.StartTime, n.Duration, n.Velocity, n.Mute)
	}
	return cl.c.Send("/live/clip/add/notes", args...)
}

// GetNotes returns every note in the clip. The reply echoes the two indexes
// and then repeats the five note fields per note.
func (cl Clip) GetNotes(ctx context.Context, track, scene int) ([]Note, error) {
	args, err := cl.c.Query(ctx, "/live/clip/get/notes", track, scene)
	if err != nil {
		return nil, err
	}
	return parseNotes(args)
}

// RemoveNotes removes all notes from the clip.
func (cl Clip) RemoveNotes(ctx context.Context, track, scene int) error {
	return cl.c.Send("/live/clip/remove/notes", track, scene)
}

func parseNotes(args []interface{}) ([]Note, error) {
	const prefix = 2 // track, scene echoed back
	if len(args) < prefix {
		return nil, fmt.Errorf("%w: note reply shorter than prefix", ErrBadReply)
	}
	body := args[prefix:]
	if len(body)%noteFieldCount != 0 {
		return nil, fmt.Errorf("%w: note reply has %d trailing args", ErrBadReply, len(body)%noteFieldCount)
	}

	notes := make([]Note, 0, len(body)/noteFieldCount)
	for i := 0; i < len(body); i += noteFieldCount {
		pitch, err := toInt(body[i])
		if err != nil {
			return nil, err
		}
		start, err := toFloat64(body[i+1])
		if err != nil {
			return nil, err
		}
		duration, err := toFloat64(body[i+2])
		if err != nil {
			return nil, err
		}
		velocity, err := toInt(body[i+3])
		if err != nil {
			return nil, err
		}
		mute, err := toBool(body[i+4])
		if err != nil {
			return nil, err
		}
		notes = append(notes, Note{
			Pitch:     pitch,
			StartTime: start,
			Duration:  duration,
			Velocity:  velocity,
			Mute:      mute,
		})
	}
	return notes, nil
}
