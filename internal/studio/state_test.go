package studio

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendSessionMakesCurrent(t *testing.T) {
	st := NewState()
	s := NewSession("a pricing card", 3)
	st.AppendSession(s)

	snap := st.Snapshot()
	require.Len(t, snap.Sessions, 1)
	assert.Equal(t, 0, snap.Nav.SessionIndex)
	assert.Nil(t, snap.Nav.ArtifactIndex)

	got := snap.Sessions[0]
	assert.Equal(t, "a pricing card", got.Prompt)
	require.Len(t, got.Artifacts, 3)
	for _, a := range got.Artifacts {
		assert.Equal(t, PlaceholderStyle, a.StyleName)
		assert.Equal(t, StatusStreaming, a.Status)
		assert.Empty(t, a.HTML)
	}
}

func TestPerIDPatchIsolation(t *testing.T) {
	st := NewState()
	s := NewSession("card", 2)
	st.AppendSession(s)

	a0, a1 := s.Artifacts[0].ID, s.Artifacts[1].ID

	// Concurrent updates addressed to different artifact ids must both land
	// without clobbering each other's fields.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			require.NoError(t, st.AppendArtifactHTML(s.ID, a0, "a"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			require.NoError(t, st.AppendArtifactHTML(s.ID, a1, "b"))
		}
	}()
	wg.Wait()

	got, err := st.SessionByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, len(got.Artifacts[0].HTML))
	assert.Equal(t, 50, len(got.Artifacts[1].HTML))
	assert.NotContains(t, got.Artifacts[0].HTML, "b")
	assert.NotContains(t, got.Artifacts[1].HTML, "a")
}

func TestOrphanUpdateDropped(t *testing.T) {
	st := NewState()
	s := NewSession("card", 1)
	st.AppendSession(s)
	st.Reset()

	err := st.AppendArtifactHTML(s.ID, s.Artifacts[0].ID, "late")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	snap := st.Snapshot()
	assert.Empty(t, snap.Sessions)
	assert.Equal(t, -1, snap.Nav.SessionIndex)
}

func TestApplyStyleNames(t *testing.T) {
	st := NewState()
	s := NewSession("card", 3)
	st.AppendSession(s)

	require.NoError(t, st.ApplyStyleNames(s.ID, []string{"Soft Glass", "Brutalist", "Neon", "Extra"}))

	got, err := st.SessionByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soft Glass", got.Artifacts[0].StyleName)
	assert.Equal(t, "Brutalist", got.Artifacts[1].StyleName)
	assert.Equal(t, "Neon", got.Artifacts[2].StyleName)
}

func TestApplyStyleNamesShortList(t *testing.T) {
	st := NewState()
	s := NewSession("card", 3)
	st.AppendSession(s)

	require.NoError(t, st.ApplyStyleNames(s.ID, []string{"Only One"}))

	got, _ := st.SessionByID(s.ID)
	assert.Equal(t, "Only One", got.Artifacts[0].StyleName)
	assert.Equal(t, PlaceholderStyle, got.Artifacts[1].StyleName)
}

func TestApplyVariation(t *testing.T) {
	st := NewState()
	s := NewSession("card", 3)
	st.AppendSession(s)
	target := s.Artifacts[1]

	require.NoError(t, st.FailArtifact(s.ID, target.ID))
	require.NoError(t, st.ApplyVariation(s.ID, target.ID, Variation{Name: "Alt", HTML: "<div>X</div>"}))

	got, err := st.SessionByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "<div>X</div>", got.Artifacts[1].HTML)
	assert.Equal(t, StatusComplete, got.Artifacts[1].Status)
	// Siblings untouched.
	assert.Empty(t, got.Artifacts[0].HTML)
	assert.Equal(t, StatusStreaming, got.Artifacts[0].Status)
	assert.Equal(t, StatusStreaming, got.Artifacts[2].Status)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	st := NewState()
	s := NewSession("card", 1)
	st.AppendSession(s)

	snap := st.Snapshot()
	snap.Sessions[0].Artifacts[0].HTML = "mutated"

	got, _ := st.SessionByID(s.ID)
	assert.Empty(t, got.Artifacts[0].HTML)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	st := NewState()
	ch, cancel := st.Subscribe()
	defer cancel()

	s := NewSession("card", 1)
	st.AppendSession(s)

	snap := <-ch
	require.Len(t, snap.Sessions, 1)
	assert.Equal(t, s.ID, snap.Sessions[0].ID)

	var last uint64 = snap.Version
	require.NoError(t, st.AppendArtifactHTML(s.ID, s.Artifacts[0].ID, "x"))
	snap = <-ch
	assert.Greater(t, snap.Version, last)
}
