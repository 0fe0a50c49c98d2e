package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// jsonText marshals structured results for the text content relayed to the
// host.
func jsonText(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(data), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// Schema property constructors shared by the catalogs.

func numberProp(desc string) Property {
	return Property{Type: "number", Description: desc}
}

func numberPropDefault(desc string, def float64) Property {
	return Property{Type: "number", Description: desc, Default: def}
}

func integerProp(desc string) Property {
	return Property{Type: "integer", Description: desc}
}

func integerPropDefault(desc string, def int) Property {
	return Property{Type: "integer", Description: desc, Default: def}
}

func stringProp(desc string) Property {
	return Property{Type: "string", Description: desc}
}

func boolProp(desc string) Property {
	return Property{Type: "boolean", Description: desc}
}

func boolPropDefault(desc string, def bool) Property {
	return Property{Type: "boolean", Description: desc, Default: def}
}

// trackIndexProp is the most common parameter in the catalog.
func trackIndexProp() Property {
	return integerProp("Track index (0-based)")
}

func sceneIndexProp() Property {
	return integerProp("Scene index (0-based)")
}

func noSchema() Schema {
	return Schema{Required: []string{}, Properties: map[string]Property{}}
}
