package tools

import (
	"go.uber.org/zap"

	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// RegisterAll wires the full tool catalog into the registry.
func RegisterAll(r *Registry, client *live.Client, log *zap.Logger) {
	RegisterSongTools(r, client)
	RegisterTrackTools(r, client)
	RegisterClipSlotTools(r, client)
	RegisterClipTools(r, client)
	RegisterSceneTools(r, client)
	RegisterViewTools(r, client)
	RegisterDeviceTools(r, client)
	RegisterBrowserTools(r, client)
	RegisterExecutorTools(r, client)
	RegisterExportTools(r, client, log)
}
