// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideas

import (
	"context"
	"log/slog"

	"github.com/pdiddy/concept-engine/pkg/types"
)

// sink is the final step of both pipelines.
type sink interface {
	keywords(ctx context.Context, keywords []string) error
	concepts(ctx context.Context, drafts []types.Draft, seeds []string) error
	state() State
}

// reportSink echoes generated output to the reporter and writes nothing.
type reportSink struct {
	report Reporter
}

func (s reportSink) keywords(_ context.Context, keywords []string) error {
	s.report(MsgDryRun)
	s.report(LabelKeywords)
	s.report(keywords)
	return nil
}

func (s reportSink) concepts(_ context.Context, drafts []types.Draft, _ []string) error {
	s.report(MsgDryRun)
	s.report(LabelConcepts)
	s.report(drafts)
	return nil
}

func (reportSink) state() State { return StateReportedOnly }

// persistSink writes generated output to the store, one awaited call at a
// time.
type persistSink struct {
	modelName func() string
	store     Store
	clock     Clock
	logger    *slog.Logger
}

func (s persistSink) keywords(ctx context.Context, keywords []string) error {
	model := s.modelName()
	for _, k := range keywords {
		kw := types.Keyword{
			Text:        k,
			CreateCount: 1,
			UseCount:    0,
			ModelName:   model,
		}
		if err := s.store.UpsertKeyword(ctx, kw); err != nil {
			return err
		}
	}
	return nil
}

// concepts stamps every draft with one batch timestamp and consecutive IDs
// starting at a single allocated base. Concept i and all its tags are written
// before concept i+1.
func (s persistSink) concepts(ctx context.Context, drafts []types.Draft, seeds []string) error {
	entryDate := s.clock.Now()

	id, err := s.store.AllocateConceptBaseID(ctx)
	if err != nil {
		return err
	}
	model := s.modelName()

	for _, d := range drafts {
		concept := types.Concept{
			ID:          id,
			NameEn:      d.NameEn,
			NameJp:      d.NameJp,
			Description: d.DescriptionJp,
			ModelName:   model,
			EntryDate:   entryDate,
		}
		if err := s.store.InsertConcept(ctx, concept); err != nil {
			return err
		}

		for _, t := range d.TagsJp {
			if err := s.store.InsertTag(ctx, types.Tag{ConceptID: id, Text: t}); err != nil {
				return err
			}
		}
		s.logger.Debug("concept saved", "id", id, "tags", len(d.TagsJp))
		id++
	}

	return s.store.MarkKeywordsUsed(ctx, seeds)
}

func (persistSink) state() State { return StateDone }
