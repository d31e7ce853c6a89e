// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideas

import (
	"context"
	"time"

	"github.com/pdiddy/concept-engine/pkg/types"
)

// GenerationBackend abstracts the language model so tests can supply a mock.
// Implementations report failures as *GenerationError and never retry.
type GenerationBackend interface {
	// ModelName identifies the concrete model in use. It is stored with
	// every keyword and concept.
	ModelName() string

	// GenerateKeywords returns count raw keyword strings.
	GenerateKeywords(ctx context.Context, count int) ([]string, error)

	// GenerateConcepts returns drafts seeded with the given keywords. The
	// result length is expected, not guaranteed, to equal count.
	GenerateConcepts(ctx context.Context, count int, seeds []string) ([]types.Draft, error)
}

// Store persists keywords, concepts and tags. Implementations report
// failures as *PersistenceError.
//
// AllocateConceptBaseID is not coordinated across callers: a store shared by
// concurrent CreateConcept calls must serialise allocation itself.
type Store interface {
	// FetchKeywords selects count stored keywords. The selection policy is
	// the store's own.
	FetchKeywords(ctx context.Context, count int) ([]string, error)

	// MarkKeywordsUsed increments the use count of every given keyword in
	// one batched update.
	MarkKeywordsUsed(ctx context.Context, keywords []string) error

	// AllocateConceptBaseID returns the first free concept identifier.
	AllocateConceptBaseID(ctx context.Context) (int64, error)

	// UpsertKeyword inserts kw, or increments the stored create count when
	// (kw.Text, kw.ModelName) already exists.
	UpsertKeyword(ctx context.Context, kw types.Keyword) error

	InsertConcept(ctx context.Context, c types.Concept) error
	InsertTag(ctx context.Context, t types.Tag) error
}

// Clock supplies the batch timestamp.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time { return time.Now() }

// Reporter receives operator-facing notifications: anomaly notices, dry-run
// echoes and progress labels. It accepts strings or structured values and
// cannot fail.
type Reporter func(v any)
