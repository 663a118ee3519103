package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	calls int
	err   error
}

func (s *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []float32{float32(len(text)), 1}, nil
}

type memoryVectorStore struct {
	points  map[uuid.UUID][]float32
	results []SearchResult
	err     error
}

func newMemoryVectorStore() *memoryVectorStore {
	return &memoryVectorStore{points: map[uuid.UUID][]float32{}}
}

func (m *memoryVectorStore) UpsertSubmission(ctx context.Context, id uuid.UUID, text string, embedding []float32) error {
	m.points[id] = embedding
	return nil
}

func (m *memoryVectorStore) SearchSimilar(ctx context.Context, q []float32, limit int) ([]SearchResult, error) {
	return m.results, m.err
}

func TestFindDuplicateAboveThreshold(t *testing.T) {
	self, other := uuid.New(), uuid.New()
	store := newMemoryVectorStore()
	store.results = []SearchResult{
		{SubmissionID: self, Score: 1},
		{SubmissionID: other, Score: 0.97},
	}

	d := NewDuplicateDetector(&stubEmbedder{}, store, 0.95)
	match, embedding, err := d.FindDuplicate(context.Background(), self, "Priya Reddy")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, other, match.SubmissionID)
	assert.InDelta(t, 0.97, match.Similarity, 1e-6)
	assert.Len(t, embedding, 2)
}

func TestFindDuplicateBelowThreshold(t *testing.T) {
	store := newMemoryVectorStore()
	store.results = []SearchResult{{SubmissionID: uuid.New(), Score: 0.80}}

	d := NewDuplicateDetector(&stubEmbedder{}, store, 0.95)
	match, embedding, err := d.FindDuplicate(context.Background(), uuid.New(), "Priya Reddy")
	require.NoError(t, err)
	assert.Nil(t, match)
	assert.NotNil(t, embedding)
}

func TestFindDuplicateErrors(t *testing.T) {
	boom := errors.New("unavailable")

	d := NewDuplicateDetector(&stubEmbedder{err: boom}, newMemoryVectorStore(), 0.95)
	_, embedding, err := d.FindDuplicate(context.Background(), uuid.New(), "text")
	assert.True(t, errors.Is(err, boom))
	assert.Nil(t, embedding)

	store := newMemoryVectorStore()
	store.err = boom
	d = NewDuplicateDetector(&stubEmbedder{}, store, 0.95)
	_, embedding, err = d.FindDuplicate(context.Background(), uuid.New(), "text")
	assert.True(t, errors.Is(err, boom))
	assert.NotNil(t, embedding)

	_, _, err = d.FindDuplicate(context.Background(), uuid.New(), "  ")
	assert.Error(t, err)
}

func TestIndexReusesEmbedding(t *testing.T) {
	embedder := &stubEmbedder{}
	store := newMemoryVectorStore()
	d := NewDuplicateDetector(embedder, store, 0.95)
	id := uuid.New()

	require.NoError(t, d.Index(context.Background(), id, "text", []float32{0, 1}))
	assert.Equal(t, 0, embedder.calls)
	assert.Equal(t, []float32{0, 1}, store.points[id])

	require.NoError(t, d.Index(context.Background(), id, "text", nil))
	assert.Equal(t, 1, embedder.calls)
}

func TestMeanVector(t *testing.T) {
	assert.Nil(t, MeanVector(nil))

	v := MeanVector([][]float32{{3, 0}, {0, 5}, {1}})
	require.Len(t, v, 2)
	assert.InDelta(t, math.Sqrt2/2, v[0], 1e-6)
	assert.InDelta(t, math.Sqrt2/2, v[1], 1e-6)

	assert.Equal(t, []float32{0, 0}, MeanVector([][]float32{{0, 0}}))
}
