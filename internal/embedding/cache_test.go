package embedding

import (
	"context"
	"testing"
)

type countingModel struct {
	embeds  int
	batches int
}

func (m *countingModel) Embed(ctx context.Context, text string) ([]float32, error) {
	m.embeds++
	return []float32{float32(len(text))}, nil
}

func (m *countingModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.batches++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t))}
	}
	return out, nil
}

func TestCachedModel_HitsSkipInner(t *testing.T) {
	inner := &countingModel{}
	model := NewCachedModel(inner, 8)
	ctx := context.Background()

	a1, err := model.Embed(ctx, "repeated question")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	a2, err := model.Embed(ctx, "repeated question")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	if inner.embeds != 1 {
		t.Errorf("inner called %d times, want 1", inner.embeds)
	}
	if a1[0] != a2[0] {
		t.Errorf("cached value differs: %v vs %v", a1, a2)
	}
}

func TestCachedModel_BatchBypassesCache(t *testing.T) {
	inner := &countingModel{}
	model := NewCachedModel(inner, 8)

	if _, err := model.EmbedBatch(context.Background(), []string{"a", "b"}); err != nil {
		t.Fatalf("EmbedBatch: %v", err)
	}
	if inner.batches != 1 {
		t.Errorf("batches = %d, want 1", inner.batches)
	}
	// Batch results are not cached; a following Embed still hits the inner model.
	if _, err := model.Embed(context.Background(), "a"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if inner.embeds != 1 {
		t.Errorf("embeds = %d, want 1", inner.embeds)
	}
}
