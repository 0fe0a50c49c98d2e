package live

import "fmt"

// OSC argument conversions. AbletonOSC answers with whatever typetags the
// bridge chose (booleans frequently arrive as 0/1 ints), so every accessor
// accepts the full numeric family.

func toFloat64(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	default:
		return 0, fmt.Errorf("%w: expected number, got %T", ErrBadReply, v)
	}
}

func toInt(v interface{}) (int, error) {
	f, err := toFloat64(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func toString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %T", ErrBadReply, v)
	}
	return s, nil
}

func toBool(v interface{}) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	default:
		f, err := toFloat64(v)
		if err != nil {
			return false, fmt.Errorf("%w: expected bool, got %T", ErrBadReply, v)
		}
		return f != 0, nil
	}
}

// normalizeArg maps Go values onto the OSC typetags the bridge expects:
// 32-bit ints and floats, strings, and 0/1 ints for booleans.
func normalizeArg(v interface{}) interface{} {
	switch t := v.(type) {
	case int:
		return int32(t)
	case int64:
		return int32(t)
	case float64:
		return float32(t)
	case bool:
		if t {
			return int32(1)
		}
		return int32(0)
	default:
		return v
	}
}

func normalizeArgs(args []interface{}) []interface{} {
	out := make([]interface{}, len(args))
	for i, a := range args {
		out[i] = normalizeArg(a)
	}
	return out
}
