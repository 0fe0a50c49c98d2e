package tools

import (
	"context"
	"fmt"

	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// RegisterDeviceTools registers the /live/device forwarding tools.
func RegisterDeviceTools(r *Registry, client *live.Client) {
	device := live.NewDevice(client)

	deviceOnly := Schema{
		Required: []string{"track_index", "device_index"},
		Properties: map[string]Property{
			"track_index":  trackIndexProp(),
			"device_index": integerProp("Device index on the track (0-based)"),
		},
	}

	r.MustRegister(&Tool{
		Name:        "device_get_name",
		Description: "Get the name of a device on a track.",
		Category:    CategoryDevice,
		Schema:      deviceOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			deviceIndex, err := intArg(args, "device_index", 0)
			if err != nil {
				return "", err
			}
			return device.GetName(ctx, trackIndex, deviceIndex)
		},
	})

	r.MustRegister(&Tool{
		Name:        "device_get_num_parameters",
		Description: "Get the number of automatable parameters on a device.",
		Category:    CategoryDevice,
		Schema:      deviceOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			deviceIndex, err := intArg(args, "device_index", 0)
			if err != nil {
				return "", err
			}
			n, err := device.GetNumParameters(ctx, trackIndex, deviceIndex)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d", n), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "device_get_parameter_names",
		Description: "List the names of all parameters on a device.",
		Category:    CategoryDevice,
		Schema:      deviceOnly,
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			deviceIndex, err := intArg(args, "device_index", 0)
			if err != nil {
				return "", err
			}
			names, err := device.GetParameterNames(ctx, trackIndex, deviceIndex)
			if err != nil {
				return "", err
			}
			return jsonText(names)
		},
	})

	r.MustRegister(&Tool{
		Name:        "device_get_parameter_value",
		Description: "Get the value of a device parameter.",
		Category:    CategoryDevice,
		Schema: Schema{
			Required: []string{"track_index", "device_index", "parameter_index"},
			Properties: map[string]Property{
				"track_index":     trackIndexProp(),
				"device_index":    integerProp("Device index on the track (0-based)"),
				"parameter_index": integerProp("Parameter index on the device (0-based)"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			deviceIndex, err := intArg(args, "device_index", 0)
			if err != nil {
				return "", err
			}
			parameterIndex, err := intArg(args, "parameter_index", 0)
			if err != nil {
				return "", err
			}
			value, err := device.GetParameterValue(ctx, trackIndex, deviceIndex, parameterIndex)
			if err != nil {
				return "", err
			}
			return formatFloat(value), nil
		},
	})

	r.MustRegister(&Tool{
		Name:        "device_set_parameter_value",
		Description: "Set the value of a device parameter.",
		Category:    CategoryDevice,
		Schema: Schema{
			Required: []string{"track_index", "device_index", "parameter_index", "value"},
			Properties: map[string]Property{
				"track_index":     trackIndexProp(),
				"device_index":    integerProp("Device index on the track (0-based)"),
				"parameter_index": integerProp("Parameter index on the device (0-based)"),
				"value":           numberProp("New parameter value (range depends on the parameter)"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			trackIndex, err := intArg(args, "track_index", 0)
			if err != nil {
				return "", err
			}
			deviceIndex, err := intArg(args, "device_index", 0)
			if err != nil {
				return "", err
			}
			parameterIndex, err := intArg(args, "parameter_index", 0)
			if err != nil {
				return "", err
			}
			value, err := floatArg(args, "value", 0)
			if err != nil {
				return "", err
			}
			if err := device.SetParameterValue(ctx, trackIndex, deviceIndex, parameterIndex, value); err != nil {
				return "", err
			}
			return fmt.Sprintf("Parameter %d of device %d on track %d set to %s",
				parameterIndex, deviceIndex, trackIndex, formatFloat(value)), nil
		},
	})
}
