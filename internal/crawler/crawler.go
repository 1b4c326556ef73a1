package crawler

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"specview/internal/extractor"
)

// Crawler scans a directory for C headers.
type Crawler struct {
	extractor *extractor.Extractor
	ignored   []string
}

// NewCrawler creates a new crawler instance.
func NewCrawler(ext *extractor.Extractor) *Crawler {
	return &Crawler{
		extractor: ext,
		ignored:   []string{".git", "vendor", "node_modules"},
	}
}

// ScanHeaders walks root, which may also be a single header, and streams
// every prototype found to onProto.
func (c *Crawler) ScanHeaders(root string, onProto func(*extractor.Prototype)) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return c.scanFile(root, onProto)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".h") {
			return nil
		}

		if err := c.scanFile(path, onProto); err != nil {
			// One unreadable header should not abort the scan.
			slog.Warn("skipping header", "path", path, "error", err)
		}
		return nil
	})
}

func (c *Crawler) scanFile(path string, onProto func(*extractor.Prototype)) error {
	protos, err := c.extractor.ExtractFromFile(path)
	if err != nil {
		return err
	}
	for _, proto := range protos {
		onProto(proto)
	}
	return nil
}
