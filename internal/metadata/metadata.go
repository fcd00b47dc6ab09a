// Package metadata persists a small JSON sidecar describing what was
// retrieved, next to the downloaded content.
package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/scribdl/scribdl/internal/logger"
	"github.com/scribdl/scribdl/internal/version"
)

// Filename is the sidecar file name inside the output directory.
const Filename = "metadata.json"

// Record describes one retrieval. The file is overwritten wholesale on
// every run; there are no update semantics.
type Record struct {
	Title             string `json:"title"`
	DocID             string `json:"doc_id"`
	URL               string `json:"url"`
	DownloadDate      string `json:"download_date"`
	DownloaderVersion string `json:"downloader_version"`
}

// NewRecord builds a Record stamped with the current time and tool
// version.
func NewRecord(title, docID, url string) Record {
	return Record{
		Title:             title,
		DocID:             docID,
		URL:               url,
		DownloadDate:      time.Now().Format(time.RFC3339),
		DownloaderVersion: version.String(),
	}
}

// Save writes rec to <dir>/metadata.json, replacing any previous file.
func Save(dir string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, Filename), data, 0o644)
}

// Load reads the sidecar from dir. It returns nil when the file is
// absent or cannot be parsed; corruption is not distinguished further.
func Load(dir string) *Record {
	data, err := os.ReadFile(filepath.Join(dir, Filename))
	if err != nil {
		return nil
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.Debug("ignoring unreadable metadata file", "dir", dir, "error", err)
		return nil
	}
	return &rec
}
