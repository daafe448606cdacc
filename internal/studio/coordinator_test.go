package studio

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFullBatch(t *testing.T) {
	st := NewState()
	client := &mockClient{
		completeText: `Here you go: ["Soft Glass","Brutalist","Neon"]`,
		streamFn: func(_, userPrompt string) []string {
			// Echo the assigned direction into the body so per-artifact
			// binding is verifiable.
			switch {
			case strings.Contains(userPrompt, "Soft Glass"):
				return []string{"<div>", "glass</div>"}
			case strings.Contains(userPrompt, "Brutalist"):
				return []string{"<div>brutal</div>"}
			default:
				return []string{"<div>neon</div>"}
			}
		},
	}

	sessionID, err := NewCoordinator(client, st, 3).Generate(context.Background(), "a pricing card")
	require.NoError(t, err)

	got, err := st.SessionByID(sessionID)
	require.NoError(t, err)
	require.Len(t, got.Artifacts, 3)

	assert.Equal(t, "Soft Glass", got.Artifacts[0].StyleName)
	assert.Equal(t, "Brutalist", got.Artifacts[1].StyleName)
	assert.Equal(t, "Neon", got.Artifacts[2].StyleName)

	for _, a := range got.Artifacts {
		assert.Equal(t, StatusComplete, a.Status)
		assert.NotEmpty(t, a.HTML)
	}
	assert.False(t, st.Loading())
}

func TestGenerateEmptyPrompt(t *testing.T) {
	st := NewState()
	_, err := NewCoordinator(&mockClient{}, st, 3).Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Empty(t, st.Snapshot().Sessions)
}

func TestGenerateDirectionFallback(t *testing.T) {
	st := NewState()
	client := &mockClient{
		completeText: "not json",
		streamFn:     func(_, _ string) []string { return []string{"<div>ok</div>"} },
	}

	sessionID, err := NewCoordinator(client, st, 3).Generate(context.Background(), "a pricing card")
	require.NoError(t, err)

	got, _ := st.SessionByID(sessionID)
	assert.Equal(t, "Modern Minimal", got.Artifacts[0].StyleName)
	assert.Equal(t, "High-Tech Dark", got.Artifacts[1].StyleName)
	assert.Equal(t, "Organic Flow", got.Artifacts[2].StyleName)
}

func TestGenerateDirectionShortListFallsBack(t *testing.T) {
	st := NewState()
	client := &mockClient{
		completeText: `["Only","Two"]`,
		streamFn:     func(_, _ string) []string { return []string{"<div>ok</div>"} },
	}

	sessionID, err := NewCoordinator(client, st, 3).Generate(context.Background(), "card")
	require.NoError(t, err)

	got, _ := st.SessionByID(sessionID)
	assert.Equal(t, FallbackDirections[0], got.Artifacts[0].StyleName)
}

func TestGenerateDirectionExtrasTruncated(t *testing.T) {
	st := NewState()
	client := &mockClient{
		completeText: `["A","B","C","D","E"]`,
		streamFn:     func(_, _ string) []string { return []string{"<div>ok</div>"} },
	}

	sessionID, err := NewCoordinator(client, st, 3).Generate(context.Background(), "card")
	require.NoError(t, err)

	got, _ := st.SessionByID(sessionID)
	require.Len(t, got.Artifacts, 3)
	assert.Equal(t, "C", got.Artifacts[2].StyleName)
}

func TestGenerateFatalBeforeFanOut(t *testing.T) {
	st := NewState()
	client := &mockClient{completeErr: errors.New("transport unavailable")}

	sessionID, err := NewCoordinator(client, st, 3).Generate(context.Background(), "card")
	require.Error(t, err)

	// Batch aborted: loading cleared, placeholders remain streaming.
	assert.False(t, st.Loading())
	got, lookupErr := st.SessionByID(sessionID)
	require.NoError(t, lookupErr)
	for _, a := range got.Artifacts {
		assert.Equal(t, StatusStreaming, a.Status)
		assert.Equal(t, PlaceholderStyle, a.StyleName)
	}
}

func TestGenerateToleratesIndividualFailure(t *testing.T) {
	st := NewState()
	client := &mockClient{
		completeText: `["A","B","C"]`,
		streamFn: func(_, userPrompt string) []string {
			if strings.Contains(userPrompt, "Style direction: B") {
				return nil // empty output settles as error
			}
			return []string{"<div>ok</div>"}
		},
	}

	sessionID, err := NewCoordinator(client, st, 3).Generate(context.Background(), "card")
	require.NoError(t, err)

	got, _ := st.SessionByID(sessionID)
	assert.Equal(t, StatusComplete, got.Artifacts[0].Status)
	assert.Equal(t, StatusError, got.Artifacts[1].Status)
	assert.Equal(t, StatusComplete, got.Artifacts[2].Status)
	assert.False(t, st.Loading())
}

func TestParseDirectionLabels(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "bare_array",
			input: `["a","b"]`,
			want:  []string{"a", "b"},
		},
		{
			name:  "embedded_in_prose",
			input: "Sure! Here are the directions:\n[\"x\", \"y\", \"z\"]\nEnjoy.",
			want:  []string{"x", "y", "z"},
		},
		{
			name:  "no_array",
			input: "not json",
			want:  nil,
		},
		{
			name:  "unbalanced",
			input: `["a","b"`,
			want:  nil,
		},
		{
			name:  "array_of_objects_rejected",
			input: `[{"a":1}]`,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDirectionLabels(tt.input))
		})
	}
}
