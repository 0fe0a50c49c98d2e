// Package export records system audio with ffmpeg while Live plays. The
// Live Object Model has no export API, so capture of the loopback device is
// the workaround. ffmpeg itself stays an external black box.
package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const probeTimeout = 10 * time.Second

// Device is one audio capture device candidate.
type Device struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Type   string `json:"type"`
	Note   string `json:"note,omitempty"`
	Error  string `json:"error,omitempty"`
}

const wslgPulseServer = "/mnt/wslg/PulseServer"

// isWSL reports whether we are inside Windows Subsystem for Linux.
func isWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}

// FindFFmpeg locates the ffmpeg executable. Inside WSL it falls back to the
// Windows ffmpeg reachable through cmd.exe.
func FindFFmpeg() (string, error) {
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return path, nil
	}

	if isWSL() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		out, err := exec.CommandContext(ctx, "cmd.exe", "/c", "where", "ffmpeg").Output()
		if err == nil {
			if lines := strings.Split(strings.TrimSpace(string(out)), "\n"); len(lines) > 0 && lines[0] != "" {
				return strings.TrimSpace(lines[0]), nil
			}
		}
	}

	return "", fmt.Errorf("ffmpeg not found; install it with:\n  Linux: sudo apt install ffmpeg\n  Windows: winget install ffmpeg")
}

// DefaultDevice picks the capture device, input format and extra environment
// for the current platform.
func DefaultDevice() (name, format string, env map[string]string, err error) {
	env = map[string]string{}

	switch {
	case runtime.GOOS == "linux" || isWSL():
		if _, statErr := os.Stat(wslgPulseServer); statErr == nil {
			env["PULSE_SERVER"] = wslgPulseServer
			return "default", "pulse", env, nil
		}
		return "default", "alsa", env, nil

	case runtime.GOOS == "darwin":
		// Needs BlackHole or another virtual loopback device.
		return "BlackHole 2ch", "avfoundation", env, nil

	case runtime.GOOS == "windows":
		return "Stereo Mix (Realtek(R) Audio)", "dshow", env, nil
	}

	return "", "", nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
}

// ListDevices enumerates audio capture devices for the current platform.
func ListDevices(ctx context.Context) []Device {
	var devices []Device

	if runtime.GOOS == "linux" {
		devices = append(devices, listLinuxDevices(ctx)...)
	}
	if isWSL() || runtime.GOOS == "windows" {
		devices = append(devices, listWindowsDevices(ctx)...)
	}

	if len(devices) == 0 {
		devices = append(devices, Device{
			Error: fmt.Sprintf("no audio devices found on %s", runtime.GOOS),
		})
	}
	return devices
}

func listLinuxDevices(ctx context.Context) []Device {
	var devices []Device

	if _, err := os.Stat(wslgPulseServer); err == nil {
		devices = append(devices, Device{
			Name:   "default",
			Format: "pulse",
			Type:   "wslg",
			Note:   "WSLg PulseAudio - captures Windows audio",
		})
	}

	// PulseAudio sources via pactl. Missing pactl is fine when WSLg is there.
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	cmd := exec.CommandContext(probeCtx, "pactl", "list", "sources", "short")
	if _, err := os.Stat(wslgPulseServer); err == nil {
		cmd.Env = append(os.Environ(), "PULSE_SERVER="+wslgPulseServer)
	}
	if out, err := cmd.Output(); err == nil {
		for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			parts := strings.Split(line, "\t")
			if len(parts) < 2 {
				continue
			}
			deviceType := "input"
			if strings.Contains(strings.ToLower(parts[1]), "monitor") {
				deviceType = "monitor"
			}
			devices = append(devices, Device{Name: parts[1], Format: "pulse", Type: deviceType})
		}
	}

	// ALSA hardware devices.
	alsaCtx, alsaCancel := context.WithTimeout(ctx, probeTimeout)
	defer alsaCancel()
	if out, err := exec.CommandContext(alsaCtx, "arecord", "-l").Output(); err == nil {
		for _, line := range strings.Split(string(out), "\n") {
			if strings.HasPrefix(line, "card") {
				devices = append(devices, Device{Name: line, Format: "alsa", Type: "hardware"})
			}
		}
	}

	return devices
}

func listWindowsDevices(ctx context.Context) []Device {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var cmd *exec.Cmd
	if isWSL() {
		cmd = exec.CommandContext(probeCtx, "cmd.exe", "/c", "ffmpeg", "-list_devices", "true", "-f", "dshow", "-i", "dummy")
	} else {
		cmd = exec.CommandContext(probeCtx, "ffmpeg", "-list_devices", "true", "-f", "dshow", "-i", "dummy")
	}

	// ffmpeg prints the device list on stderr and exits non-zero; both are
	// expected.
	out, err := cmd.CombinedOutput()
	if len(out) == 0 && err != nil {
		return []Device{{Error: err.Error()}}
	}
	return parseDShowDevices(string(out))
}

// parseDShowDevices extracts audio device names from ffmpeg -list_devices
// output.
func parseDShowDevices(output string) []Device {
	var devices []Device
	inAudioSection := false

	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "DirectShow audio devices") {
			inAudioSection = true
			continue
		}
		if strings.Contains(line, "DirectShow video devices") {
			inAudioSection = false
			continue
		}
		if !inAudioSection || !strings.Contains(line, `"`) {
			continue
		}
		start := strings.Index(line, `"`) + 1
		end := strings.LastIndex(line, `"`)
		if start > 0 && end > start {
			devices = append(devices, Device{Name: line[start:end], Format: "dshow", Type: "audio"})
		}
	}
	return devices
}

// SupportedExtension reports whether the output file extension maps to a
// known codec configuration.
func SupportedExtension(outputFile string) bool {
	switch strings.ToLower(filepath.Ext(outputFile)) {
	case ".mp3", ".wav", ".flac", ".ogg", ".m4a":
		return true
	}
	return false
}
