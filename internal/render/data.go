package render

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DataEvaluator resolves expressions as dotted paths into decoded YAML data,
// e.g. "user.name" or "items.0". A leading "self." or "t." is ignored so the
// same template can be compiled and previewed.
type DataEvaluator struct {
	Data map[string]any
}

// LoadData reads a YAML (or JSON) data file
func LoadData(path string) (*DataEvaluator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseData(raw)
}

// ParseData decodes YAML data
func ParseData(raw []byte) (*DataEvaluator, error) {
	data := map[string]any{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding data: %w", err)
	}
	return &DataEvaluator{Data: data}, nil
}

func (d *DataEvaluator) Eval(expr string) (any, error) {
	path := strings.TrimPrefix(strings.TrimPrefix(expr, "self."), "t.")
	if path == "" {
		return nil, fmt.Errorf("empty expression")
	}

	var cur any = d.Data
	for _, key := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[key]
			if !ok {
				return nil, fmt.Errorf("no value for %q", key)
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("bad index %q", key)
			}
			cur = node[i]
		default:
			return nil, fmt.Errorf("cannot index %T with %q", cur, key)
		}
	}
	return cur, nil
}
