package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestEntry represents one document in the output manifest.
type ManifestEntry struct {
	Source  string       `json:"source"`
	Output  string       `json:"output"`
	Preview string       `json:"preview,omitempty"`
	Hidden  int          `json:"hidden"`
	Viewers []ViewerInfo `json:"viewers"`
}

// WriteManifest writes manifest.json describing every successful result.
// Paths are stored relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Source:  r.Source,
			Output:  relTo(dir, r.Output),
			Preview: relTo(dir, r.Preview),
			Hidden:  r.Hidden,
			Viewers: r.Viewers,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func relTo(dir, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
