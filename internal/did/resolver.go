package did

import (
	"context"

	"github.com/pkg/errors"
)

// Resolver resolves a DID to its document. Network-backed implementations
// (registry contracts, universal resolvers) live outside this module, this is
// the seam they plug into.
type Resolver interface {
	Resolve(ctx context.Context, id string) (*Document, error)
}

// StaticResolver serves documents from memory. Used by the CLI (documents
// loaded from disk) and by tests.
type StaticResolver struct {
	docs map[string]*Document
}

func NewStaticResolver(docs ...*Document) *StaticResolver {
	r := &StaticResolver{docs: make(map[string]*Document, len(docs))}
	for _, doc := range docs {
		r.docs[doc.ID] = doc
	}
	return r
}

func (r *StaticResolver) Resolve(_ context.Context, id string) (*Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, errors.Errorf("no document for %s", id)
	}
	return doc, nil
}
