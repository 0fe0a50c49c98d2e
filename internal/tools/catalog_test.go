package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ldraney/ableton-mcp-server/internal/config"
	"github.com/ldraney/ableton-mcp-server/internal/live"
)

func newCatalogRegistry(t *testing.T) *Registry {
	t.Helper()

	// Registration never touches the wire, so any destination works.
	client, err := live.Dial(config.OSCConfig{
		Host:        "127.0.0.1",
		SendPort:    11000,
		ReceivePort: 0,
		Timeout:     time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	reg := NewRegistry(zap.NewNop())
	RegisterAll(reg, client, zap.NewNop())
	return reg
}

func TestCatalogComplete(t *testing.T) {
	reg := newCatalogRegistry(t)

	// One spot check per category; the full lists live in the register
	// functions themselves.
	expected := map[Category][]string{
		CategorySong:     {"song_get_tempo", "song_set_tempo", "song_play", "song_stop", "song_undo"},
		CategoryTrack:    {"track_get_name", "track_set_volume", "track_stop_all_clips"},
		CategoryClipSlot: {"clip_slot_create_clip", "clip_slot_delete_clip", "clip_slot_has_clip"},
		CategoryClip:     {"clip_fire", "clip_add_notes", "clip_get_notes", "clip_set_looping"},
		CategoryScene:    {"scene_fire", "scene_get_name", "scene_set_name"},
		CategoryView:     {"view_get_selected_track", "view_set_selected_scene"},
		CategoryDevice:   {"device_get_name", "device_set_parameter_value"},
		CategoryBrowser:  {"browser_search", "browser_load_item", "browser_list_packs", "browser_list_sounds"},
		CategoryExecutor: {"song_execute", "song_execute_info"},
		CategoryExport:   {"song_export_audio", "export_list_audio_devices", "export_test_audio_capture"},
	}

	for category, names := range expected {
		for _, name := range names {
			tool := reg.Get(name)
			require.NotNilf(t, tool, "tool %s not registered", name)
			assert.Equalf(t, category, tool.Category, "tool %s in wrong category", name)
			assert.NotEmptyf(t, tool.Description, "tool %s has no description", name)
		}
	}
}

func TestCatalogSchemasCoverRequiredArgs(t *testing.T) {
	reg := newCatalogRegistry(t)

	for _, tool := range reg.All() {
		for _, required := range tool.Schema.Required {
			_, ok := tool.Schema.Properties[required]
			assert.Truef(t, ok, "tool %s: required arg %s has no property definition", tool.Name, required)
		}
	}
}

func TestCatalogCounts(t *testing.T) {
	reg := newCatalogRegistry(t)

	counts := map[Category]int{
		CategorySong:     23,
		CategoryTrack:    14,
		CategoryClipSlot: 3,
		CategoryClip:     10,
		CategoryScene:    3,
		CategoryView:     4,
		CategoryDevice:   5,
		CategoryBrowser:  11,
		CategoryExecutor: 2,
		CategoryExport:   4,
	}

	total := 0
	for category, want := range counts {
		got := len(reg.GetByCategory(category))
		assert.Equalf(t, want, got, "category %s", category)
		total += want
	}
	assert.Equal(t, total, reg.Count())
}
