package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/ldraney/ableton-mcp-server/internal/live"
)

// RegisterBrowserTools registers the /live/browser forwarding tools. Browser
// scans walk Live's content tree and can run for tens of seconds, so the
// facade applies its own timeout.
func RegisterBrowserTools(r *Registry, client *live.Client) {
	browser := live.NewBrowser(client)

	r.MustRegister(&Tool{
		Name:        "browser_list_packs",
		Description: "List all installed Ableton pack names, including Core Library and purchased packs.",
		Category:    CategoryBrowser,
		Schema:      noSchema(),
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			packs, err := browser.ListPacks(ctx)
			if err != nil {
				return "", err
			}
			return jsonText(packs)
		},
	})

	r.MustRegister(&Tool{
		Name: "browser_list_pack_contents",
		Description: "Recursively list all loadable items in a pack " +
			"(presets, instruments, effects, drum kits).",
		Category: CategoryBrowser,
		Schema: Schema{
			Required: []string{"pack_name"},
			Properties: map[string]Property{
				"pack_name": stringProp("Name of the pack to explore (can be partial match)"),
				"max_depth": integerPropDefault("Maximum folder depth to search", 10),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			packName, err := stringArg(args, "pack_name", "")
			if err != nil {
				return "", err
			}
			maxDepth, err := intArg(args, "max_depth", 10)
			if err != nil {
				return "", err
			}
			items, err := browser.ListPackContents(ctx, packName, maxDepth)
			if err != nil {
				return "", err
			}
			return jsonText(items)
		},
	})

	r.MustRegister(&Tool{
		Name: "browser_search",
		Description: "Search all packs for items matching a query. " +
			"Returns item name, pack name and full path per match.",
		Category: CategoryBrowser,
		Schema: Schema{
			Required: []string{"query"},
			Properties: map[string]Property{
				"query":       stringProp("Search string (case-insensitive partial match)"),
				"max_results": integerPropDefault("Maximum number of results", 50),
				"max_depth":   integerPropDefault("Maximum folder depth to search", 10),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			query, err := stringArg(args, "query", "")
			if err != nil {
				return "", err
			}
			maxResults, err := intArg(args, "max_results", 50)
			if err != nil {
				return "", err
			}
			maxDepth, err := intArg(args, "max_depth", 10)
			if err != nil {
				return "", err
			}
			results, err := browser.Search(ctx, query, maxResults, maxDepth)
			if err != nil {
				return "", err
			}
			return jsonText(results)
		},
	})

	r.MustRegister(&Tool{
		Name: "browser_search_and_load",
		Description: "Search all packs for an item matching the query and load " +
			"the first match into the currently selected track.",
		Category: CategoryBrowser,
		Schema: Schema{
			Required: []string{"query"},
			Properties: map[string]Property{
				"query": stringProp("Search string (case-insensitive partial match)"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			query, err := stringArg(args, "query", "")
			if err != nil {
				return "", err
			}
			loaded, err := browser.SearchAndLoad(ctx, query)
			if err != nil {
				return "", err
			}
			if loaded == "" {
				return fmt.Sprintf("No item found matching '%s'", query), nil
			}
			return fmt.Sprintf("Loaded: %s", loaded), nil
		},
	})

	r.MustRegister(&Tool{
		Name: "browser_search_by_type",
		Description: "Search for devices within one browser category only. " +
			"Faster than browser_search when the device type is known.",
		Category: CategoryBrowser,
		Schema: Schema{
			Required: []string{"query", "device_type"},
			Properties: map[string]Property{
				"query":       stringProp("Search string (case-insensitive partial match)"),
				"device_type": stringProp("Category to search: 'instrument', 'audio_effect', 'midi_effect', or 'drums'"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			query, err := stringArg(args, "query", "")
			if err != nil {
				return "", err
			}
			deviceType, err := stringArg(args, "device_type", "")
			if err != nil {
				return "", err
			}

			var items []string
			switch deviceType {
			case "instrument":
				items, err = browser.ListInstruments(ctx)
			case "audio_effect":
				items, err = browser.ListAudioEffects(ctx)
			case "midi_effect":
				items, err = browser.ListMidiEffects(ctx)
			case "drums":
				items, err = browser.ListDrums(ctx)
			default:
				return "", fmt.Errorf("%w: device_type %q must be one of instrument, audio_effect, midi_effect, drums",
					ErrInvalidArgType, deviceType)
			}
			if err != nil {
				return "", err
			}

			queryLower := strings.ToLower(query)
			matches := make([]string, 0, len(items))
			for _, item := range items {
				if strings.Contains(strings.ToLower(item), queryLower) {
					matches = append(matches, item)
				}
			}
			return jsonText(matches)
		},
	})

	r.MustRegister(&Tool{
		Name: "browser_load_item",
		Description: "Load a browser item by its full path into the currently selected track. " +
			"Paths come from browser_list_pack_contents or browser_search.",
		Category: CategoryBrowser,
		Schema: Schema{
			Required: []string{"full_path"},
			Properties: map[string]Property{
				"full_path": stringProp("Full path to the item (e.g., 'Pack/Folder/Item')"),
			},
		},
		Execute: func(ctx context.Context, args map[string]any) (string, error) {
			fullPath, err := stringArg(args, "full_path", "")
			if err != nil {
				return "", err
			}
			ok, err := browser.LoadItem(ctx, fullPath)
			if err != nil {
				return "", err
			}
			if !ok {
				return fmt.Sprintf("Failed to load: %s", fullPath), nil
			}
			return fmt.Sprintf("Successfully loaded: %s", fullPath), nil
		},
	})

	sections := []struct {
		name        string
		description string
		list        func(context.Context) ([]string, error)
	}{
		{"browser_list_instruments", "List top-level items in the Instruments browser section.", browser.ListInstruments},
		{"browser_list_audio_effects", "List top-level items in the Audio Effects browser section.", browser.ListAudioEffects},
		{"browser_list_midi_effects", "List top-level items in the MIDI Effects browser section.", browser.ListMidiEffects},
		{"browser_list_drums", "List top-level items in the Drums browser section.", browser.ListDrums},
		{"browser_list_sounds", "List top-level items in the Sounds browser section.", browser.ListSounds},
	}
	for _, s := range sections {
		list := s.list
		r.MustRegister(&Tool{
			Name:        s.name,
			Description: s.description,
			Category:    CategoryBrowser,
			Schema:      noSchema(),
			Execute: func(ctx context.Context, args map[string]any) (string, error) {
				items, err := list(ctx)
				if err != nil {
					return "", err
				}
				return jsonText(items)
			},
		})
	}
}
