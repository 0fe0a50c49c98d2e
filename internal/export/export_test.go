package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildArgsPulseMP3(t *testing.T) {
	args := BuildArgs(CaptureOptions{
		OutputFile: "/tmp/out.mp3",
		Duration:   12.5,
		Device:     "default",
		Format:     "pulse",
		SampleRate: 44100,
	})

	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "-f pulse -i default")
	assert.Contains(t, joined, "-t 12.5")
	assert.Contains(t, joined, "-ar 44100 -ac 2")
	assert.Contains(t, joined, "-codec:a libmp3lame -q:a 2")
	assert.Equal(t, "/tmp/out.mp3", args[len(args)-1])
}

func TestBuildArgsDeviceFlags(t *testing.T) {
	tests := []struct {
		format string
		device string
		want   string
	}{
		{"pulse", "default", "default"},
		{"alsa", "0", "hw:0"},
		{"dshow", "Stereo Mix", "audio=Stereo Mix"},
		{"avfoundation", "BlackHole 2ch", ":BlackHole 2ch"},
		{"jack", "sys", "sys"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			args := BuildArgs(CaptureOptions{
				OutputFile: "x.wav",
				Duration:   1,
				Device:     tt.device,
				Format:     tt.format,
				SampleRate: 48000,
			})
			for i, a := range args {
				if a == "-i" {
					assert.Equal(t, tt.want, args[i+1])
					return
				}
			}
			t.Fatal("no -i flag in args")
		})
	}
}

func TestBuildArgsCodecs(t *testing.T) {
	tests := []struct {
		file  string
		codec string
	}{
		{"a.flac", "flac"},
		{"a.ogg", "libvorbis"},
		{"a.m4a", "aac"},
	}
	for _, tt := range tests {
		args := BuildArgs(CaptureOptions{OutputFile: tt.file, Duration: 1, Device: "d", Format: "pulse", SampleRate: 44100})
		assert.Contains(t, strings.Join(args, " "), tt.codec, "file %s", tt.file)
	}
}

func TestBuildArgsWAVUsesDefaultCodec(t *testing.T) {
	args := BuildArgs(CaptureOptions{OutputFile: "a.wav", Duration: 1, Device: "d", Format: "pulse", SampleRate: 44100})
	assert.NotContains(t, strings.Join(args, " "), "-codec:a")
}

func TestSupportedExtension(t *testing.T) {
	assert.True(t, SupportedExtension("song.mp3"))
	assert.True(t, SupportedExtension("SONG.WAV"))
	assert.True(t, SupportedExtension("/a/b/c.flac"))
	assert.False(t, SupportedExtension("song.aiff"))
	assert.False(t, SupportedExtension("song"))
}

func TestParseDShowDevices(t *testing.T) {
	output := `
[dshow @ 0000] DirectShow video devices (some may be both video and audio devices)
[dshow @ 0000]  "Integrated Camera"
[dshow @ 0000] DirectShow audio devices
[dshow @ 0000]  "Stereo Mix (Realtek(R) Audio)"
[dshow @ 0000]  "Microphone Array"
`
	devices := parseDShowDevices(output)
	assert.Len(t, devices, 2)
	assert.Equal(t, "Stereo Mix (Realtek(R) Audio)", devices[0].Name)
	assert.Equal(t, "dshow", devices[0].Format)
	assert.Equal(t, "Microphone Array", devices[1].Name)
}
