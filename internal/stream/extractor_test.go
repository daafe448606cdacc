package stream

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
)

func TestFeedSingleFragment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple",
			input: `prefix {"key": "value"} suffix`,
			want:  []string{`{"key": "value"}`},
		},
		{
			name:  "nested",
			input: `{"a": {"b": "c"}}`,
			want:  []string{`{"a": {"b": "c"}}`},
		},
		{
			name:  "multiple",
			input: `{"id": 1} noise {"id": 2}`,
			want:  []string{`{"id": 1}`, `{"id": 2}`},
		},
		{
			name:  "incomplete",
			input: `prefix {"never": "closed"`,
			want:  nil,
		},
		{
			name:  "empty_object",
			input: `{}`,
			want:  []string{`{}`},
		},
		{
			name:  "stray_close_before_open",
			input: `} {"ok": true}`,
			want:  []string{`{"ok": true}`},
		},
		{
			name:  "malformed_candidate_skipped",
			input: `{not json} {"ok": 1}`,
			want:  []string{`{"ok": 1}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewExtractor().Feed(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d objects, want %d", len(got), len(tt.want))
			}
			for i, obj := range got {
				if string(obj) != tt.want[i] {
					t.Errorf("object[%d] = %q, want %q", i, obj, tt.want[i])
				}
			}
		})
	}
}

func TestFeedAcrossFragmentBoundary(t *testing.T) {
	ex := NewExtractor()

	got := ex.Feed(`{"a":1}{"b"`)
	if len(got) != 1 || string(got[0]) != `{"a":1}` {
		t.Fatalf("first fragment: got %v, want [{\"a\":1}]", got)
	}

	got = ex.Feed(`:2}`)
	if len(got) != 1 || string(got[0]) != `{"b":2}` {
		t.Fatalf("second fragment: got %v, want [{\"b\":2}]", got)
	}
}

// TestFeedArbitrarySplits serializes a batch of objects and replays the text
// split at every possible boundary, including mid-token. The emitted sequence
// must always equal the original objects.
func TestFeedArbitrarySplits(t *testing.T) {
	objects := []map[string]any{
		{"name": "Soft Glass", "html": "<div class=\"glass\">one</div>"},
		{"name": "Brutalist", "html": "<section>two</section>"},
		{"name": "Neon", "html": "<main id=\"neon\">three</main>"},
	}

	var text string
	for _, obj := range objects {
		b, err := json.Marshal(obj)
		if err != nil {
			t.Fatal(err)
		}
		text += string(b) + "\n"
	}

	for split := 0; split <= len(text); split++ {
		ex := NewExtractor()
		var emitted []json.RawMessage
		emitted = append(emitted, ex.Feed(text[:split])...)
		emitted = append(emitted, ex.Feed(text[split:])...)

		if len(emitted) != len(objects) {
			t.Fatalf("split %d: emitted %d objects, want %d", split, len(emitted), len(objects))
		}
		for i, raw := range emitted {
			var got map[string]any
			if err := json.Unmarshal(raw, &got); err != nil {
				t.Fatalf("split %d: object %d invalid: %v", split, i, err)
			}
			if !reflect.DeepEqual(got, objects[i]) {
				t.Errorf("split %d: object %d = %v, want %v", split, i, got, objects[i])
			}
		}
	}
}

func TestFeedPartialNeverCloses(t *testing.T) {
	ex := NewExtractor()
	for _, frag := range []string{`{"a": `, `{"b": `, `"still open"`} {
		if got := ex.Feed(frag); got != nil {
			t.Fatalf("Feed(%q) emitted %v, want nothing", frag, got)
		}
	}
}

func TestObjectsChannel(t *testing.T) {
	frags := make(chan string)
	out := Objects(context.Background(), frags)

	go func() {
		frags <- `{"n":1}{"n"`
		frags <- `:2} trailing {"partial":`
		close(frags)
	}()

	var got []string
	for obj := range out {
		got = append(got, string(obj))
	}

	want := []string{`{"n":1}`, `{"n":2}`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestObjectsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frags := make(chan string)
	out := Objects(ctx, frags)

	cancel()
	if _, ok := <-out; ok {
		// A buffered emission may race the cancel; drain until close.
		for range out {
		}
	}
}
