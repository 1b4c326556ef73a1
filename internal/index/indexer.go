package index

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"specview/internal/crawler"
	"specview/internal/extractor"
)

// Snapshot is the serialized set of prototypes read from a header tree.
type Snapshot struct {
	Root       string                 `json:"root"`
	Prototypes []*extractor.Prototype `json:"prototypes"`
}

// Indexer orchestrates header scanning and snapshot management.
type Indexer struct {
	crawler *crawler.Crawler
}

// NewIndexer creates a new indexer.
func NewIndexer(c *crawler.Crawler) *Indexer {
	return &Indexer{
		crawler: c,
	}
}

// BuildSnapshot scans root and collects every prototype in scan order.
func (i *Indexer) BuildSnapshot(root string) (*Snapshot, error) {
	snap := &Snapshot{Root: root, Prototypes: []*extractor.Prototype{}}

	err := i.crawler.ScanHeaders(root, func(p *extractor.Prototype) {
		snap.Prototypes = append(snap.Prototypes, p)
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return snap, nil
}

// Load reads a saved snapshot when source ends in ".json" and scans headers otherwise.
func (i *Indexer) Load(source string) (*Snapshot, error) {
	if strings.HasSuffix(source, ".json") {
		return LoadSnapshot(source)
	}
	return i.BuildSnapshot(source)
}

// SaveSnapshot persists the snapshot to a JSON file.
func SaveSnapshot(snap *Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot loads a snapshot from a JSON file.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	snap := &Snapshot{}
	if err := json.NewDecoder(f).Decode(snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}
