package theme

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"
)

// ListingEntry is one item of a GitHub repository contents listing.
type ListingEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	SHA         string `json:"sha"`
	Size        int64  `json:"size"`
	Type        string `json:"type"` // "file" | "dir" | "symlink" | "submodule"
	DownloadURL string `json:"download_url"`
}

// IsFile reports whether the entry is a regular file that can be downloaded.
func (e ListingEntry) IsFile() bool {
	return e.Type == "file" && e.DownloadURL != ""
}

// Stem returns the entry name without its extension.
func (e ListingEntry) Stem() string {
	return strings.TrimSuffix(e.Name, path.Ext(e.Name))
}

// ParseListing decodes a contents listing response.
func ParseListing(data []byte) ([]ListingEntry, error) {
	var entries []ListingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}
	return entries, nil
}
