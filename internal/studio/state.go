package studio

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"mockforge/internal/logging"
)

var (
	// ErrSessionNotFound signals an update addressed to a session that is no
	// longer in history. Generators treat it as "drop the update".
	ErrSessionNotFound = errors.New("session not found")

	// ErrArtifactNotFound signals an update addressed to an unknown artifact
	// within an existing session.
	ErrArtifactNotFound = errors.New("artifact not found")
)

// Snapshot is an immutable copy of the engine state handed to observers.
type Snapshot struct {
	Version  uint64
	Sessions []Session
	Loading  bool
	Nav      NavigationState
}

// State is the single shared mutable resource: session history, the batch
// loading flag, and the navigation position. All mutations go through its
// methods, address records by id, and bump a version counter so observers
// can tell snapshots apart.
type State struct {
	mu       sync.RWMutex
	version  uint64
	sessions []Session
	loading  bool
	nav      NavigationState

	subs   map[int]chan Snapshot
	nextID int
}

// NewState returns an empty state with no sessions and no focus.
func NewState() *State {
	return &State{
		nav:  NavigationState{SessionIndex: -1},
		subs: make(map[int]chan Snapshot),
	}
}

// Subscribe registers an observer. Snapshots are delivered on a buffered
// channel; an observer that falls behind loses intermediate snapshots, never
// the state itself (the next delivery carries the full copy). The returned
// func unsubscribes and closes the channel.
func (st *State) Subscribe() (<-chan Snapshot, func()) {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := st.nextID
	st.nextID++
	ch := make(chan Snapshot, 16)
	st.subs[id] = ch

	cancel := func() {
		st.mu.Lock()
		defer st.mu.Unlock()
		if c, ok := st.subs[id]; ok {
			delete(st.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Snapshot returns a deep copy of the current state.
func (st *State) Snapshot() Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snapshotLocked()
}

func (st *State) snapshotLocked() Snapshot {
	sessions := make([]Session, len(st.sessions))
	for i, s := range st.sessions {
		sessions[i] = s.clone()
	}
	nav := st.nav
	if st.nav.ArtifactIndex != nil {
		idx := *st.nav.ArtifactIndex
		nav.ArtifactIndex = &idx
	}
	return Snapshot{
		Version:  st.version,
		Sessions: sessions,
		Loading:  st.loading,
		Nav:      nav,
	}
}

// publishLocked bumps the version and fans the new snapshot out to
// subscribers. Callers hold the write lock.
func (st *State) publishLocked() {
	st.version++
	if len(st.subs) == 0 {
		return
	}
	snap := st.snapshotLocked()
	for _, ch := range st.subs {
		select {
		case ch <- snap:
		default:
			// Slow observer: drop this snapshot, a later one supersedes it.
		}
	}
}

// AppendSession adds a session to the end of history, makes it current, and
// clears any artifact focus.
func (st *State) AppendSession(s Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions = append(st.sessions, s.clone())
	st.nav.SessionIndex = len(st.sessions) - 1
	st.nav.ArtifactIndex = nil
	st.publishLocked()
}

// SetLoading flips the batch loading flag.
func (st *State) SetLoading(loading bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.loading = loading
	st.publishLocked()
}

// Loading reports whether a batch is still settling.
func (st *State) Loading() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.loading
}

// SessionByID returns a deep copy of the addressed session.
func (st *State) SessionByID(sessionID string) (Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, s := range st.sessions {
		if s.ID == sessionID {
			return s.clone(), nil
		}
	}
	return Session{}, ErrSessionNotFound
}

// CurrentSession returns a deep copy of the session under the navigation
// cursor, or false when history is empty.
func (st *State) CurrentSession() (Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.nav.SessionIndex < 0 || st.nav.SessionIndex >= len(st.sessions) {
		return Session{}, false
	}
	return st.sessions[st.nav.SessionIndex].clone(), true
}

// ApplyStyleNames overwrites the style labels of the addressed session's
// artifacts in order. Extra labels are ignored; missing labels leave the
// placeholder in place.
func (st *State) ApplyStyleNames(sessionID string, names []string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.findSessionLocked(sessionID)
	if s == nil {
		return ErrSessionNotFound
	}
	for i := range s.Artifacts {
		if i < len(names) {
			s.Artifacts[i].StyleName = names[i]
		}
	}
	st.publishLocked()
	return nil
}

// patchArtifact locates the addressed artifact and applies fn to it. Only
// that artifact is replaced, so concurrent patches to sibling artifacts in
// the same session never clobber each other. A missing session means the
// update is orphaned (history was reset mid-flight) and must be dropped by
// the caller.
func (st *State) patchArtifact(sessionID, artifactID string, fn func(*Artifact)) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.findSessionLocked(sessionID)
	if s == nil {
		return ErrSessionNotFound
	}
	for i := range s.Artifacts {
		if s.Artifacts[i].ID == artifactID {
			fn(&s.Artifacts[i])
			st.publishLocked()
			return nil
		}
	}
	return ErrArtifactNotFound
}

func (st *State) findSessionLocked(sessionID string) *Session {
	for i := range st.sessions {
		if st.sessions[i].ID == sessionID {
			return &st.sessions[i]
		}
	}
	return nil
}

// AppendArtifactHTML appends one streamed increment to the artifact's html.
func (st *State) AppendArtifactHTML(sessionID, artifactID, delta string) error {
	return st.patchArtifact(sessionID, artifactID, func(a *Artifact) {
		a.HTML += delta
	})
}

// FinalizeArtifact replaces the artifact's html with its normalized form and
// moves it to its settled status.
func (st *State) FinalizeArtifact(sessionID, artifactID, html string, status ArtifactStatus) error {
	return st.patchArtifact(sessionID, artifactID, func(a *Artifact) {
		a.HTML = html
		a.Status = status
	})
}

// FailArtifact moves the artifact to error without touching its html.
func (st *State) FailArtifact(sessionID, artifactID string) error {
	return st.patchArtifact(sessionID, artifactID, func(a *Artifact) {
		a.Status = StatusError
	})
}

// ApplyVariation overwrites the artifact's html with the chosen variation
// and forces complete. This is the one sanctioned backward status move.
func (st *State) ApplyVariation(sessionID, artifactID string, v Variation) error {
	return st.patchArtifact(sessionID, artifactID, func(a *Artifact) {
		a.HTML = v.HTML
		a.Status = StatusComplete
	})
}

// Reset clears all history, navigation, and loading state. In-flight
// generators become orphaned; their late updates fail the session lookup and
// are dropped.
func (st *State) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions = nil
	st.loading = false
	st.nav = NavigationState{SessionIndex: -1}
	st.publishLocked()
	logging.Get(logging.CategoryStudio).Info("state reset", zap.Uint64("version", st.version))
}
