package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"alfredoptarigan/profile-screener/internal/models"
)

// Embedder turns text into a vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// DuplicateDetector finds earlier submissions with near-identical text. The
// result is informational and never feeds the fraud score.
type DuplicateDetector interface {
	FindDuplicate(ctx context.Context, submissionID uuid.UUID, text string) (*models.DuplicateMatch, []float32, error)
	Index(ctx context.Context, submissionID uuid.UUID, text string, embedding []float32) error
}

type duplicateDetector struct {
	embedder  Embedder
	store     VectorStore
	chunker   TextChunker
	threshold float32
}

func NewDuplicateDetector(embedder Embedder, store VectorStore, threshold float32) DuplicateDetector {
	return &duplicateDetector{
		embedder:  embedder,
		store:     store,
		chunker:   NewTextChunker(),
		threshold: threshold,
	}
}

// FindDuplicate embeds text and returns the closest other submission whose
// similarity reaches the threshold, along with the embedding so the caller
// can index it without a second round trip.
func (d *duplicateDetector) FindDuplicate(ctx context.Context, submissionID uuid.UUID, text string) (*models.DuplicateMatch, []float32, error) {
	embedding, err := d.embed(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	results, err := d.store.SearchSimilar(ctx, embedding, 2)
	if err != nil {
		return nil, embedding, err
	}

	for _, r := range results {
		if r.SubmissionID == submissionID {
			continue
		}
		if r.Score >= d.threshold {
			return &models.DuplicateMatch{SubmissionID: r.SubmissionID, Similarity: r.Score}, embedding, nil
		}
		break
	}
	return nil, embedding, nil
}

func (d *duplicateDetector) Index(ctx context.Context, submissionID uuid.UUID, text string, embedding []float32) error {
	if embedding == nil {
		var err error
		if embedding, err = d.embed(ctx, text); err != nil {
			return err
		}
	}
	return d.store.UpsertSubmission(ctx, submissionID, text, embedding)
}

// embed embeds each chunk of text and averages the normalized vectors.
func (d *duplicateDetector) embed(ctx context.Context, text string) ([]float32, error) {
	chunks := d.chunker.ChunkText(text, maxEmbeddingChars)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("nothing to embed")
	}

	vectors := make([][]float32, 0, len(chunks))
	for _, chunk := range chunks {
		v, err := d.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, v)
	}
	return MeanVector(vectors), nil
}

// MeanVector returns the unit-length mean of the unit-normalized vectors.
// Vectors whose length differs from the first are ignored.
func MeanVector(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}
	mean := make([]float64, len(vectors[0]))
	for _, v := range vectors {
		if len(v) != len(mean) {
			continue
		}
		n := vectorNorm(v)
		if n == 0 {
			continue
		}
		for i, x := range v {
			mean[i] += float64(x) / n
		}
	}

	total := 0.0
	for _, x := range mean {
		total += x * x
	}
	total = math.Sqrt(total)

	out := make([]float32, len(mean))
	for i, x := range mean {
		if total > 0 {
			out[i] = float32(x / total)
		}
	}
	return out
}

func vectorNorm(v []float32) float64 {
	sum := 0.0
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
