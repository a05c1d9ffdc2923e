package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// LocalModel is a self-contained embedder that hashes bag-of-words features
// into a fixed-dimension vector. It needs no model server, so the service can
// run and be tested without network access. Retrieval quality is word-overlap
// based rather than semantic.
type LocalModel struct {
	dimension    int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewLocalModel creates a LocalModel producing vectors of the given dimension.
// Non-positive dimensions fall back to 512.
func NewLocalModel(dimension int) *LocalModel {
	if dimension <= 0 {
		dimension = 512
	}
	return &LocalModel{
		dimension:    dimension,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Embed computes the hashed bag-of-words embedding for the given text.
// The result is L2-normalized; an empty or all-stopword text yields the zero
// vector.
func (m *LocalModel) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, m.dimension)

	for _, tok := range m.tokenize(text) {
		if _, isStop := m.stopwords[tok]; isStop {
			continue
		}
		bucket, sign := m.hash(tok)
		// Sub-linear term weighting keeps very frequent words from dominating.
		vec[bucket] += sign
	}
	for i, v := range vec {
		if v != 0 {
			vec[i] = float32(math.Log1p(math.Abs(float64(v)))) * signOf(v)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec, nil
}

// EmbedBatch computes embeddings for a batch of texts.
func (m *LocalModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = vec
	}
	return embeddings, nil
}

func (m *LocalModel) tokenize(text string) []string {
	return m.tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// hash maps a token to a bucket index and a +1/-1 sign. The sign reduces the
// bias introduced by bucket collisions.
func (m *LocalModel) hash(token string) (int, float32) {
	h := fnv.New64a()
	h.Write([]byte(token))
	sum := h.Sum64()
	bucket := int(sum % uint64(m.dimension))
	if (sum>>63)&1 == 1 {
		return bucket, -1
	}
	return bucket, 1
}

func signOf(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "and", "are", "as", "at", "be", "but", "by", "for",
		"if", "in", "into", "is", "it", "its", "no", "not", "of", "on",
		"or", "our", "such", "that", "the", "their", "then", "there",
		"these", "they", "this", "to", "was", "we", "what", "when",
		"which", "who", "will", "with",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
