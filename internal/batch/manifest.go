package batch

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ManifestEntry represents one view in the output manifest.
type ManifestEntry struct {
	Index     int     `json:"index"`
	Azimuth   float64 `json:"azimuth"`
	Elevation float64 `json:"elevation"`
	Image     string  `json:"image"`
	Success   bool    `json:"success"`
	Error     string  `json:"error,omitempty"`
}

// WriteManifest writes manifest.json. Image paths are relative to the
// manifest's directory when possible.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		img := r.View.Output
		if rel, err := filepath.Rel(dir, img); err == nil {
			img = filepath.ToSlash(rel)
		}
		entries[i] = ManifestEntry{
			Index:     r.View.Index,
			Azimuth:   r.View.Azimuth,
			Elevation: r.View.Elevation,
			Image:     img,
			Success:   r.Success,
			Error:     r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "manifest")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "manifest")
}
