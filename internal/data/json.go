package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"energy-insights/internal/model"
)

// LoadRecordsJSON reads a saved list payload (bare array or envelope).
func LoadRecordsJSON(path string) ([]model.Record, error) {
	v, err := loadJSON(path)
	if err != nil {
		return nil, err
	}
	return asList(v, strings.TrimSuffix(filepath.Base(path), ".json"))
}

// LoadRecordJSON reads a saved object payload.
func LoadRecordJSON(path string) (model.Record, error) {
	v, err := loadJSON(path)
	if err != nil {
		return nil, err
	}
	return asObject(v, strings.TrimSuffix(filepath.Base(path), ".json"))
}

// LoadRecordDir reads every *.json object in dir, keyed by file name without
// extension. A missing directory yields an empty map.
func LoadRecordDir(dir string) (map[string]model.Record, error) {
	out := map[string]model.Record{}
	if dir == "" {
		return out, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rec, err := LoadRecordJSON(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(e.Name(), ".json")] = rec
	}
	return out, nil
}

func loadJSON(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return v, nil
}
