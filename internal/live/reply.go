package live

import "fmt"

// Reply accessors. Song-level getters answer with just the value; object
// getters echo the indexes first and put the value last.

func firstFloat(args []interface{}) (float64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: empty reply", ErrBadReply)
	}
	return toFloat64(args[0])
}

func firstInt(args []interface{}) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: empty reply", ErrBadReply)
	}
	return toInt(args[0])
}

func firstBool(args []interface{}) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("%w: empty reply", ErrBadReply)
	}
	return toBool(args[0])
}

func lastFloat(args []interface{}) (float64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: empty reply", ErrBadReply)
	}
	return toFloat64(args[len(args)-1])
}

func lastInt(args []interface{}) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: empty reply", ErrBadReply)
	}
	return toInt(args[len(args)-1])
}

func lastBool(args []interface{}) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("%w: empty reply", ErrBadReply)
	}
	return toBool(args[len(args)-1])
}

func lastString(args []interface{}) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: empty reply", ErrBadReply)
	}
	return toString(args[len(args)-1])
}

// stringsAfter converts args[skip:] to strings.
func stringsAfter(args []interface{}, skip int) ([]string, error) {
	if len(args) < skip {
		return nil, fmt.Errorf("%w: reply shorter than prefix", ErrBadReply)
	}
	out := make([]string, 0, len(args)-skip)
	for _, a := range args[skip:] {
		s, err := toString(a)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
