package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered scene in the output manifest.
type ManifestEntry struct {
	Scene  string `json:"scene"`
	Image  string `json:"image"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Actors int    `json:"actors"`
}

// WriteManifest writes manifest.json listing every successful render.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Scene:  r.Scene,
			Image:  r.Image,
			Width:  r.Width,
			Height: r.Height,
			Actors: r.Actors,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
