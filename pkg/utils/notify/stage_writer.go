package notify

import (
	"fmt"
	"io"
	"sync"
	"unicode"
	"unicode/utf8"
)

// StageSeparatingWriter inserts a blank line before each stage title written after
// earlier output. A title is any write whose first rune is a pictographic symbol that is
// not one of the message symbols (► ✔ ✗ ⚠ ℹ ✚ ⏲).
type StageSeparatingWriter struct {
	mu         sync.Mutex
	underlying io.Writer
	hasWritten bool
}

// NewStageSeparatingWriter wraps underlying.
func NewStageSeparatingWriter(underlying io.Writer) *StageSeparatingWriter {
	return &StageSeparatingWriter{underlying: underlying}
}

// Write implements io.Writer.
func (w *StageSeparatingWriter) Write(data []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(data) == 0 {
		return 0, nil
	}

	if w.hasWritten && isTitle(data) {
		_, err := w.underlying.Write([]byte{'\n'})
		if err != nil {
			return 0, fmt.Errorf("failed to write stage separator: %w", err)
		}
	}

	n, err := w.underlying.Write(data)
	if n > 0 {
		w.hasWritten = true
	}

	if err != nil {
		return n, fmt.Errorf("failed to write data: %w", err)
	}

	return n, nil
}

func isTitle(data []byte) bool {
	first, _ := utf8.DecodeRune(data)

	switch first {
	case utf8.RuneError, '►', '✔', '✗', '⚠', 'ℹ', '✚', '⏲':
		return false
	}

	return unicode.Is(unicode.So, first)
}
