package embedder

import (
	"bytes"
	"errors"
	"sort"

	"github.com/google/uuid"
)

// Embedding is an information dense vector representation of the semantic
// meaning of a piece of text. The distance between two embeddings in the
// vector space is correlated with semantic similarity between the inputs.
type Embedding struct {
	Object    string            `json:"object"`
	Embedding []float64         `json:"embedding"`
	Index     int               `json:"index"`
	Meta      map[string]string `json:"meta,omitempty"`
}

// UUID derives a stable identifier from the embedded object and its
// metadata. Meta keys are hashed in sorted order so the same record always
// maps to the same identifier.
func (e Embedding) UUID() string {
	sb := new(bytes.Buffer)
	sb.WriteString(e.Object)
	keys := make([]string, 0, len(e.Meta))
	for k := range e.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(k + ":" + e.Meta[k])
		sb.WriteByte('\n')
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, sb.Bytes()).String()
}

// DotProduct calculates the dot product of the embedding vector with another
// embedding vector. Both vectors must have the same length.
func (e *Embedding) DotProduct(other *Embedding) (float64, error) {
	if len(e.Embedding) != len(other.Embedding) {
		return 0, errors.New("vector length mismatch")
	}
	var dotProduct float64
	for i := range e.Embedding {
		dotProduct += e.Embedding[i] * other.Embedding[i]
	}
	return dotProduct, nil
}
