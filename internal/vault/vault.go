// Package vault persists artifacts the user chose to keep beyond their
// originating session. Records are deep copies keyed by artifact id; the
// session itself may be discarded later without affecting the vault.
package vault

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"mockforge/internal/logging"
	"mockforge/internal/studio"
)

// Vault is a SQLite-backed artifact store.
type Vault struct {
	mu sync.Mutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS saved_artifacts (
	id          TEXT PRIMARY KEY,
	style_name  TEXT NOT NULL,
	html        TEXT NOT NULL,
	status      TEXT NOT NULL,
	prompt      TEXT NOT NULL,
	saved_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saved_artifacts_saved_at ON saved_artifacts(saved_at);
`

// Open opens (creating if needed) the vault database at path.
func Open(path string) (*Vault, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create vault directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate vault schema: %w", err)
	}

	logging.Get(logging.CategoryVault).Debug("vault opened", zap.String("path", path))
	return &Vault{db: db}, nil
}

// Save stores or refreshes one artifact snapshot.
func (v *Vault) Save(rec studio.SavedArtifact) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, err := v.db.Exec(
		`INSERT OR REPLACE INTO saved_artifacts (id, style_name, html, status, prompt, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StyleName, rec.HTML, string(rec.Status), rec.Prompt, rec.SavedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", rec.ID, err)
	}

	logging.Get(logging.CategoryVault).Debug("artifact saved",
		zap.String("id", rec.ID), zap.String("style", rec.StyleName))
	return nil
}

// List returns all saved artifacts, newest first.
func (v *Vault) List() ([]studio.SavedArtifact, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows, err := v.db.Query(
		`SELECT id, style_name, html, status, prompt, saved_at
		 FROM saved_artifacts ORDER BY saved_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var out []studio.SavedArtifact
	for rows.Next() {
		var rec studio.SavedArtifact
		var status string
		var savedAt time.Time
		if err := rows.Scan(&rec.ID, &rec.StyleName, &rec.HTML, &status, &rec.Prompt, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		rec.Status = studio.ArtifactStatus(status)
		rec.SavedAt = savedAt
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns one saved artifact by id.
func (v *Vault) Get(id string) (studio.SavedArtifact, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var rec studio.SavedArtifact
	var status string
	err := v.db.QueryRow(
		`SELECT id, style_name, html, status, prompt, saved_at
		 FROM saved_artifacts WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.StyleName, &rec.HTML, &status, &rec.Prompt, &rec.SavedAt)
	if err != nil {
		return studio.SavedArtifact{}, fmt.Errorf("failed to load artifact %s: %w", id, err)
	}
	rec.Status = studio.ArtifactStatus(status)
	return rec, nil
}

// Remove deletes one saved artifact by id. Removing an unknown id is a no-op.
func (v *Vault) Remove(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, err := v.db.Exec(`DELETE FROM saved_artifacts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove artifact %s: %w", id, err)
	}
	return nil
}

// Close releases the underlying database.
func (v *Vault) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.db.Close()
}
