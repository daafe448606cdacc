// Package export packages one artifact's final HTML for use outside the
// studio: either a standalone document or a small zip bundle.
package export

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"mockforge/internal/logging"
)

// WriteDocument writes the html text to path as a standalone document.
func WriteDocument(path, html string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	logging.Get(logging.CategoryExport).Info("document exported",
		zap.String("path", path), zap.Int("bytes", len(html)))
	return nil
}

// WriteBundle writes a zip archive at path containing the document as
// index.html, ready to unpack and open.
func WriteBundle(path, html string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("index.html")
	if err != nil {
		zw.Close()
		return fmt.Errorf("failed to create bundle entry: %w", err)
	}
	if _, err := w.Write([]byte(html)); err != nil {
		zw.Close()
		return fmt.Errorf("failed to write bundle entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize bundle: %w", err)
	}

	logging.Get(logging.CategoryExport).Info("bundle exported", zap.String("path", path))
	return nil
}
