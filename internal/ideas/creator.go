// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ideas orchestrates keyword and concept generation. It asks a
// GenerationBackend for keywords or concept drafts, validates and shapes the
// output, and hands it to a Store, or only reports it in dry-run mode.
//
// Port errors are returned to the caller exactly as the port produced them.
// Nothing is retried and partial writes are not rolled back.
package ideas

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/concept-engine/pkg/types"
)

// Reporter messages and labels.
const (
	MsgAnomaly    = "generation anomaly: skipping save"
	MsgDryRun     = "dry run"
	LabelKeywords = "keywords"
	LabelConcepts = "concepts"

	seedReportPrefix = "generating with keywords: "
)

// State is the terminal state of one pipeline invocation.
type State string

const (
	StateRejected     State = "rejected"
	StateReportedOnly State = "reported_only"
	StateDone         State = "done"
)

// Option configures a Creator.
type Option func(*options)

type options struct {
	dryRun bool
	logger *slog.Logger
}

// WithDryRun makes the Creator report generated output instead of saving it.
// The store is never called and the clock is never read.
func WithDryRun(enabled bool) Option {
	return func(o *options) { o.dryRun = enabled }
}

// WithLogger sets the structured logger for stage diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Creator runs the keyword and concept pipelines. A Creator holds no
// per-call state and may be reused.
type Creator struct {
	backend GenerationBackend
	store   Store
	report  Reporter
	sink    sink
	logger  *slog.Logger
}

// NewCreator builds a Creator. The final step of each pipeline is chosen here
// once: a reporting sink in dry-run mode, a persisting sink otherwise.
func NewCreator(backend GenerationBackend, store Store, clock Clock, report Reporter, opts ...Option) *Creator {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	if report == nil {
		report = func(any) {}
	}

	var s sink
	if o.dryRun {
		s = reportSink{report: report}
	} else {
		s = persistSink{
			modelName: backend.ModelName,
			store:     store,
			clock:     clock,
			logger:    o.logger,
		}
	}

	return &Creator{
		backend: backend,
		store:   store,
		report:  report,
		sink:    s,
		logger:  o.logger,
	}
}

// CreateKeywords generates count keywords and saves them. A batch holding any
// keyword longer than types.MaxKeywordLength is reported and dropped whole.
func (c *Creator) CreateKeywords(ctx context.Context, count int) error {
	log := c.logger.With("pipeline", "keywords")

	keywords, err := c.backend.GenerateKeywords(ctx, count)
	if err != nil {
		return err
	}
	log.Debug("keywords generated", "requested", count, "received", len(keywords))

	if i := oversizedKeyword(keywords); i >= 0 {
		c.report(MsgAnomaly)
		log.Warn("keyword batch rejected",
			"state", StateRejected,
			"index", i,
			"length", utf8.RuneCountInString(keywords[i]))
		return nil
	}

	if err := c.sink.keywords(ctx, keywords); err != nil {
		return err
	}
	log.Debug("keyword batch finished", "state", c.sink.state(), "count", len(keywords))
	return nil
}

// GetKeywords returns count stored keywords chosen by the store.
func (c *Creator) GetKeywords(ctx context.Context, count int) ([]string, error) {
	return c.store.FetchKeywords(ctx, count)
}

// CreateConcept generates count concepts seeded with seeds and saves each
// with its tags. The seeds are then marked as used in a single call.
func (c *Creator) CreateConcept(ctx context.Context, count int, seeds []string) error {
	log := c.logger.With("pipeline", "concepts")

	c.report(seedReportPrefix + strings.Join(seeds, ","))

	drafts, err := c.backend.GenerateConcepts(ctx, count, seeds)
	if err != nil {
		return err
	}
	log.Debug("concepts generated", "requested", count, "received", len(drafts), "seeds", len(seeds))

	if err := c.sink.concepts(ctx, drafts, seeds); err != nil {
		return err
	}
	log.Debug("concept batch finished", "state", c.sink.state(), "count", len(drafts))
	return nil
}

// oversizedKeyword returns the index of the first keyword longer than
// types.MaxKeywordLength characters, or -1.
func oversizedKeyword(keywords []string) int {
	for i, k := range keywords {
		if utf8.RuneCountInString(k) > types.MaxKeywordLength {
			return i
		}
	}
	return -1
}
