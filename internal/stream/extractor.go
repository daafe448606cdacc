// Package stream extracts complete JSON objects from an arbitrarily
// chunked text stream. Generation responses arrive as text fragments with
// no alignment to object boundaries; the extractor buffers fragments and
// emits each top-level object as soon as its closing brace arrives.
package stream

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"mockforge/internal/logging"
)

// Extractor accumulates text fragments and yields complete top-level JSON
// objects. Boundary detection is plain brace-depth counting; braces embedded
// in string literals are not recognized, so a candidate span that fails to
// parse is skipped by advancing past its opening brace while keeping the
// buffered text for a later attempt. A strict incremental tokenizer would
// remove that limitation, but brace counting has held up against real model
// output, which never emits literal braces inside string values here.
//
// An Extractor is single-use: one per response stream, never reset.
type Extractor struct {
	buf strings.Builder
}

// NewExtractor returns an empty extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Feed appends one fragment to the buffer and returns every complete JSON
// object that can now be extracted, in order of appearance. Returns nil when
// no object closed inside the buffered text yet.
func (e *Extractor) Feed(fragment string) []json.RawMessage {
	e.buf.WriteString(fragment)

	var objects []json.RawMessage
	s := e.buf.String()
	search := 0

	for {
		open := strings.IndexByte(s[search:], '{')
		if open == -1 {
			break
		}
		open += search

		end, ok := closingBrace(s, open)
		if !ok {
			// Partial object; wait for more input.
			break
		}

		candidate := s[open : end+1]
		if json.Valid([]byte(candidate)) {
			objects = append(objects, json.RawMessage(candidate))
			// Drop the consumed span and everything before it.
			s = s[end+1:]
			search = 0
			continue
		}

		// False boundary (e.g. a brace inside a string literal closed the
		// depth early). Keep the buffer, retry from the next opening brace.
		search = open + 1
	}

	e.buf.Reset()
	e.buf.WriteString(s)
	return objects
}

// closingBrace scans forward from the opening brace at start and returns the
// index of the brace that returns the depth to zero.
func closingBrace(s string, start int) (int, bool) {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// Objects adapts a fragment channel to a channel of extracted JSON objects.
// Each object is emitted as soon as it closes. When fragments closes, any
// unconsumed partial buffer is discarded and the output channel is closed.
func Objects(ctx context.Context, fragments <-chan string) <-chan json.RawMessage {
	out := make(chan json.RawMessage, 8)

	go func() {
		defer close(out)
		ex := NewExtractor()
		log := logging.Get(logging.CategoryStream)

		for {
			select {
			case <-ctx.Done():
				return
			case frag, ok := <-fragments:
				if !ok {
					if ex.buf.Len() > 0 {
						log.Debug("discarding partial buffer at end of stream",
							zap.Int("bytes", ex.buf.Len()))
					}
					return
				}
				for _, obj := range ex.Feed(frag) {
					select {
					case out <- obj:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out
}
