package live

import "context"

// Device wraps the /live/device address space. Devices are addressed by
// (track, device) index pairs, parameters by a third index.
type Device struct {
	c *Client
}

// NewDevice returns a Device facade over the client.
func NewDevice(c *Client) Device {
	return Device{c: c}
}

func (d Device) GetName(ctx context.Context, track, device int) (string, error) {
	args, err := d.c.Query(ctx, "/live/device/get/name", track, device)
	if err != nil {
		return "", err
	}
	return lastString(args)
}

func (d Device) GetNumParameters(ctx context.Context, track, device int) (int, error) {
	args, err := d.c.Query(ctx, "/live/device/get/num_parameters", track, device)
	if err != nil {
		return 0, err
	}
	return lastInt(args)
}

// GetParameterNames lists every parameter name of the device.
func (d Device) GetParameterNames(ctx context.Context, track, device int) ([]string, error) {
	args, err := d.c.Query(ctx, "/live/device/get/parameters/name", track, device)
	if err != nil {
		return nil, err
	}
	return stringsAfter(args, 2)
}

func (d Device) GetParameterValue(ctx context.Context, track, device, parameter int) (float64, error) {
	args, err := d.c.Query(ctx, "/live/device/get/parameter/value", track, device, parameter)
	if err != nil {
		return 0, err
	}
	return lastFloat(args)
}

func (d Device) SetParameterValue(ctx context.Context, track, device, parameter int, value float64) error {
	return d.c.Send("/live/device/set/parameter/value", track, device, parameter, value)
}
