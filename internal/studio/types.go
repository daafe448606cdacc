// Package studio implements the generation engine: session orchestration,
// concurrent per-artifact streaming, history navigation, and variation
// replacement. All shared state lives in a single State container and every
// mutation addresses sessions and artifacts by stable id, never by index.
package studio

import (
	"time"

	"github.com/google/uuid"
)

// ArtifactStatus is the lifecycle state of one generated variant.
// Status only moves forward (streaming -> complete, streaming -> error);
// the single exception is applying a variation, which replaces the html and
// forces complete.
type ArtifactStatus string

const (
	StatusStreaming ArtifactStatus = "streaming"
	StatusComplete  ArtifactStatus = "complete"
	StatusError     ArtifactStatus = "error"
)

// PlaceholderStyle labels an artifact before direction resolution finishes.
const PlaceholderStyle = "Designing..."

// FallbackDirections is applied when direction resolution returns malformed
// JSON or fewer labels than the batch needs.
var FallbackDirections = []string{"Modern Minimal", "High-Tech Dark", "Organic Flow"}

// DefaultFanOut is the number of variants generated per prompt.
const DefaultFanOut = 3

// Artifact is one generated visual variant, owned by its parent session.
type Artifact struct {
	ID        string         `json:"id"`
	StyleName string         `json:"style_name"`
	HTML      string         `json:"html"`
	Status    ArtifactStatus `json:"status"`
}

// Session is one user prompt and its batch of artifacts.
type Session struct {
	ID        string     `json:"id"`
	Prompt    string     `json:"prompt"`
	Timestamp time.Time  `json:"timestamp"`
	Artifacts []Artifact `json:"artifacts"`
}

// NewSession builds a session with fanOut placeholder artifacts, all in
// streaming state with the placeholder style label.
func NewSession(prompt string, fanOut int) Session {
	artifacts := make([]Artifact, fanOut)
	for i := range artifacts {
		artifacts[i] = Artifact{
			ID:        uuid.NewString(),
			StyleName: PlaceholderStyle,
			Status:    StatusStreaming,
		}
	}
	return Session{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		Timestamp: time.Now(),
		Artifacts: artifacts,
	}
}

func (s Session) clone() Session {
	out := s
	out.Artifacts = make([]Artifact, len(s.Artifacts))
	copy(out.Artifacts, s.Artifacts)
	return out
}

// SavedArtifact is a vault record: a deep copy of an artifact plus its
// originating prompt. Its lifetime is independent of the session, which may
// be discarded later.
type SavedArtifact struct {
	ID        string         `json:"id"`
	StyleName string         `json:"style_name"`
	HTML      string         `json:"html"`
	Status    ArtifactStatus `json:"status"`
	Prompt    string         `json:"prompt"`
	SavedAt   time.Time      `json:"saved_at"`
}

// NewSavedArtifact snapshots an artifact for the vault.
func NewSavedArtifact(a Artifact, prompt string) SavedArtifact {
	return SavedArtifact{
		ID:        a.ID,
		StyleName: a.StyleName,
		HTML:      a.HTML,
		Status:    a.Status,
		Prompt:    prompt,
		SavedAt:   time.Now(),
	}
}

// Variation is one alternative rendering offered as a replacement for an
// already-generated artifact.
type Variation struct {
	Name string `json:"name"`
	HTML string `json:"html"`
}

// NavigationState is the derived traversal position over session history.
// SessionIndex is -1 when no session exists. ArtifactIndex is nil in
// grid/overview mode and otherwise always valid for the current session.
type NavigationState struct {
	SessionIndex  int
	ArtifactIndex *int
}
