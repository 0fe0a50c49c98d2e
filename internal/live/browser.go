package live

import (
	"context"
	"fmt"
	"time"
)

// browserTimeout replaces the client default for browser calls. Recursive
// pack scans walk thousands of browser items inside Live and routinely take
// tens of seconds.
const browserTimeout = 60 * time.Second

// SearchResult is one hit from a browser search.
type SearchResult struct {
	ItemName string `json:"item_name"`
	PackName string `json:"pack_name"`
	FullPath string `json:"full_path"`
}

// Browser wraps the /live/browser address space.
type Browser struct {
	c *Client
}

// NewBrowser returns a Browser facade over the client.
func NewBrowser(c *Client) Browser {
	return Browser{c: c}
}

// ListPacks lists all installed pack names.
func (b Browser) ListPacks(ctx context.Context) ([]string, error) {
	args, err := b.c.QueryTimeout(ctx, browserTimeout, "/live/browser/get/packs")
	if err != nil {
		return nil, err
	}
	return stringsAfter(args, 0)
}

// ListPackContents lists loadable item paths inside a pack, up to maxDepth
// folder levels.
func (b Browser) ListPackContents(ctx context.Context, packName string, maxDepth int) ([]string, error) {
	args, err := b.c.QueryTimeout(ctx, browserTimeout, "/live/browser/get/pack_contents", packName, maxDepth)
	if err != nil {
		return nil, err
	}
	return stringsAfter(args, 0)
}

// Search scans every pack for items matching query. The reply is a flat
// list of (item_name, pack_name, full_path) triples.
func (b Browser) Search(ctx context.Context, query string, maxResults, maxDepth int) ([]SearchResult, error) {
	args, err := b.c.QueryTimeout(ctx, browserTimeout, "/live/browser/search", query, maxResults, maxDepth)
	if err != nil {
		return nil, err
	}

	fields, err := stringsAfter(args, 0)
	if err != nil {
		return nil, err
	}
	if len(fields)%3 != 0 {
		return nil, fmt.Errorf("%w: search reply has %d trailing fields", ErrBadReply, len(fields)%3)
	}

	results := make([]SearchResult, 0, len(fields)/3)
	for i := 0; i < len(fields); i += 3 {
		results = append(results, SearchResult{
			ItemName: fields[i],
			PackName: fields[i+1],
			FullPath: fields[i+2],
		})
	}
	return results, nil
}

// SearchAndLoad searches every pack and loads the first match into the
// selected track. Returns the loaded item name, or "" when nothing matched.
func (b Browser) SearchAndLoad(ctx context.Context, query string) (string, error) {
	args, err := b.c.QueryTimeout(ctx, browserTimeout, "/live/browser/search_and_load", query)
	if err != nil {
		return "", err
	}
	return lastString(args)
}

// LoadItem loads a browser item by its full path into the selected track.
func (b Browser) LoadItem(ctx context.Context, fullPath string) (bool, error) {
	args, err := b.c.QueryTimeout(ctx, browserTimeout, "/live/browser/load_item", fullPath)
	if err != nil {
		return false, err
	}
	return lastBool(args)
}

// ListInstruments lists top-level items of the Instruments section.
func (b Browser) ListInstruments(ctx context.Context) ([]string, error) {
	return b.listSection(ctx, "/live/browser/get/instruments")
}

// ListAudioEffects lists top-level items of the Audio Effects section.
func (b Browser) ListAudioEffects(ctx context.Context) ([]string, error) {
	return b.listSection(ctx, "/live/browser/get/audio_effects")
}

// ListMidiEffects lists top-level items of the MIDI Effects section.
func (b Browser) ListMidiEffects(ctx context.Context) ([]string, error) {
	return b.listSection(ctx, "/live/browser/get/midi_effects")
}

// ListDrums lists top-level items of the Drums section.
func (b Browser) ListDrums(ctx context.Context) ([]string, error) {
	return b.listSection(ctx, "/live/browser/get/drums")
}

// ListSounds lists top-level items of the Sounds section.
func (b Browser) ListSounds(ctx context.Context) ([]string, error) {
	return b.listSection(ctx, "/live/browser/get/sounds")
}

func (b Browser) listSection(ctx context.Context, address string) ([]string, error) {
	args, err := b.c.QueryTimeout(ctx, browserTimeout, address)
	if err != nil {
		return nil, err
	}
	return stringsAfter(args, 0)
}
