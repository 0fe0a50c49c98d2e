package tools

import (
	"fmt"

	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// Argument coercion. JSON-RPC params arrive as map[string]any with every
// number a float64; handlers pull typed values out with defaults for
// optional parameters.

func intArg(args map[string]any, name string, def int) (int, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case int:
		return t, nil
	case int64:
		return int(t), nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidArgType, name, v)
	}
}

func floatArg(args map[string]any, name string, def float64) (float64, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidArgType, name, v)
	}
}

func stringArg(args map[string]any, name, def string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidArgType, name, v)
	}
	return s, nil
}

func boolArg(args map[string]any, name string, def bool) (bool, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", ErrInvalidArgType, name, v)
	}
	return b, nil
}

// notesArg decodes the "notes" parameter: a list of objects with pitch,
// start_time, duration, velocity and an optional mute flag.
func notesArg(args map[string]any, name string) ([]live.Note, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequiredArg, name)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array, got %T", ErrInvalidArgType, name, v)
	}

	notes := make([]live.Note, 0, len(list))
	for i, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be an object, got %T", ErrInvalidArgType, name, i, item)
		}
		pitch, err := requiredNumber(obj, "pitch", name, i)
		if err != nil {
			return nil, err
		}
		start, err := requiredNumber(obj, "start_time", name, i)
		if err != nil {
			return nil, err
		}
		duration, err := requiredNumber(obj, "duration", name, i)
		if err != nil {
			return nil, err
		}
		velocity, err := requiredNumber(obj, "velocity", name, i)
		if err != nil {
			return nil, err
		}
		mute, err := boolArg(obj, "mute", false)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		notes = append(notes, live.Note{
			Pitch:     int(pitch),
			StartTime: start,
			Duration:  duration,
			Velocity:  int(velocity),
			Mute:      mute,
		})
	}
	return notes, nil
}

func requiredNumber(obj map[string]any, field, listName string, index int) (float64, error) {
	v, ok := obj[field]
	if !ok {
		return 0, fmt.Errorf("%w: %s[%d].%s", ErrMissingRequiredArg, listName, index, field)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %s[%d].%s must be a number, got %T", ErrInvalidArgType, listName, index, field, v)
	}
	return f, nil
}
