package studio

import "errors"

// ErrInvalidFocus signals a Focus call with an index outside the current
// session's artifact range.
var ErrInvalidFocus = errors.New("artifact index out of range")

// Navigation over session history is a two-level cursor: a session index and
// an optional artifact index within that session. While an artifact is
// focused, Advance and Retreat move only inside the session; crossing to a
// neighboring session requires an explicit Unfocus first.

// Advance moves the cursor forward: to the next artifact while focused, else
// to the next session. At either boundary it is a no-op.
func (st *State) Advance() {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.nav.ArtifactIndex != nil {
		cur := st.currentSessionLocked()
		if cur == nil {
			return
		}
		next := *st.nav.ArtifactIndex + 1
		if next < len(cur.Artifacts) {
			st.nav.ArtifactIndex = &next
			st.publishLocked()
		}
		return
	}

	if st.nav.SessionIndex >= 0 && st.nav.SessionIndex+1 < len(st.sessions) {
		st.nav.SessionIndex++
		st.publishLocked()
	}
}

// Retreat moves the cursor backward, symmetric to Advance.
func (st *State) Retreat() {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.nav.ArtifactIndex != nil {
		prev := *st.nav.ArtifactIndex - 1
		if prev >= 0 {
			st.nav.ArtifactIndex = &prev
			st.publishLocked()
		}
		return
	}

	if st.nav.SessionIndex > 0 {
		st.nav.SessionIndex--
		st.publishLocked()
	}
}

// Focus sets the artifact cursor within the current session.
func (st *State) Focus(i int) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	cur := st.currentSessionLocked()
	if cur == nil || i < 0 || i >= len(cur.Artifacts) {
		return ErrInvalidFocus
	}
	st.nav.ArtifactIndex = &i
	st.publishLocked()
	return nil
}

// Unfocus clears the artifact cursor, returning to grid view.
func (st *State) Unfocus() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.nav.ArtifactIndex == nil {
		return
	}
	st.nav.ArtifactIndex = nil
	st.publishLocked()
}

// Nav returns a copy of the current navigation position.
func (st *State) Nav() NavigationState {
	st.mu.RLock()
	defer st.mu.RUnlock()
	nav := st.nav
	if st.nav.ArtifactIndex != nil {
		idx := *st.nav.ArtifactIndex
		nav.ArtifactIndex = &idx
	}
	return nav
}

func (st *State) currentSessionLocked() *Session {
	if st.nav.SessionIndex < 0 || st.nav.SessionIndex >= len(st.sessions) {
		return nil
	}
	return &st.sessions[st.nav.SessionIndex]
}
