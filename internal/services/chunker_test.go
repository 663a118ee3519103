package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestChunkTextShort(t *testing.T) {
	chunks := NewTextChunker().ChunkText("Priya Reddy\n\n  Hyderabad\n", 100)
	assert.Equal(t, []string{"Priya Reddy\nHyderabad"}, chunks)
}

func TestChunkTextEmpty(t *testing.T) {
	assert.Empty(t, NewTextChunker().ChunkText(" \n\n ", 100))
}

func TestChunkTextRespectsLimit(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, "Worked on payments platform in Hyderabad.")
	}
	text := strings.Join(lines, "\n") + "\n" + strings.Repeat("x", 130)

	chunks := NewTextChunker().ChunkText(text, 100)
	assert.Greater(t, len(chunks), 10)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 100)
	}
	assert.Equal(t, strings.Repeat("x", 30), chunks[len(chunks)-1])
}

func TestChunkTextSplitsLongLineOnSentences(t *testing.T) {
	line := "First sentence here. Second sentence follows! Third one?"
	chunks := NewTextChunker().ChunkText(line, 25)
	assert.Equal(t, []string{"First sentence here.", "Second sentence follows!", "Third one?"}, chunks)
}
