// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideas

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/concept-engine/pkg/types"
)

// --- fakes ---

type fakeBackend struct {
	model    string
	keywords []string
	drafts   []types.Draft
	err      error

	gotCount int
	gotSeeds []string
}

func (f *fakeBackend) ModelName() string { return f.model }

func (f *fakeBackend) GenerateKeywords(_ context.Context, count int) ([]string, error) {
	f.gotCount = count
	if f.err != nil {
		return nil, f.err
	}
	return f.keywords, nil
}

func (f *fakeBackend) GenerateConcepts(_ context.Context, count int, seeds []string) ([]types.Draft, error) {
	f.gotCount = count
	f.gotSeeds = seeds
	if f.err != nil {
		return nil, f.err
	}
	return f.drafts, nil
}

type call struct {
	Name string
	Arg  any
}

// recorder is both the Store and the Clock, so the relative order of clock
// reads and store calls is visible in one list.
type recorder struct {
	calls   []call
	baseID  int64
	now     time.Time
	fetched []string

	failOn  string // call name that fails
	failAt  int    // 1-based occurrence of failOn that fails
	failErr error
	seen    map[string]int
}

func (r *recorder) record(name string, arg any) error {
	r.calls = append(r.calls, call{Name: name, Arg: arg})
	if r.seen == nil {
		r.seen = map[string]int{}
	}
	r.seen[name]++
	if name == r.failOn && r.seen[name] == r.failAt {
		return r.failErr
	}
	return nil
}

func (r *recorder) Now() time.Time {
	r.record("Now", nil)
	return r.now
}

func (r *recorder) FetchKeywords(_ context.Context, count int) ([]string, error) {
	if err := r.record("FetchKeywords", count); err != nil {
		return nil, err
	}
	return r.fetched, nil
}

func (r *recorder) MarkKeywordsUsed(_ context.Context, keywords []string) error {
	return r.record("MarkKeywordsUsed", keywords)
}

func (r *recorder) AllocateConceptBaseID(_ context.Context) (int64, error) {
	if err := r.record("AllocateConceptBaseID", nil); err != nil {
		return 0, err
	}
	return r.baseID, nil
}

func (r *recorder) UpsertKeyword(_ context.Context, kw types.Keyword) error {
	return r.record("UpsertKeyword", kw)
}

func (r *recorder) InsertConcept(_ context.Context, c types.Concept) error {
	return r.record("InsertConcept", c)
}

func (r *recorder) InsertTag(_ context.Context, t types.Tag) error {
	return r.record("InsertTag", t)
}

func (r *recorder) names() []string {
	var out []string
	for _, c := range r.calls {
		out = append(out, c.Name)
	}
	return out
}

func (r *recorder) args(name string) []any {
	var out []any
	for _, c := range r.calls {
		if c.Name == name {
			out = append(out, c.Arg)
		}
	}
	return out
}

type reports struct {
	got []any
}

func (r *reports) report(v any) { r.got = append(r.got, v) }

func sampleDrafts(n int) []types.Draft {
	drafts := make([]types.Draft, 0, n)
	for i := 1; i <= n; i++ {
		drafts = append(drafts, types.Draft{
			NameEn:        fmt.Sprintf("name_en_%d", i),
			NameJp:        fmt.Sprintf("name_jp_%d", i),
			DescriptionJp: fmt.Sprintf("description_jp_%d", i),
			TagsJp:        []string{fmt.Sprintf("tag%d_1", i), fmt.Sprintf("tag%d_2", i)},
		})
	}
	return drafts
}

var batchTime = time.Date(2024, 5, 29, 0, 0, 0, 0, time.Local)

func newTestCreator(b *fakeBackend, r *recorder, rep *reports, dryRun bool) *Creator {
	return NewCreator(b, r, r, rep.report, WithDryRun(dryRun))
}

// --- CreateKeywords ---

func TestCreateKeywords_AnomalyRejectsWholeBatch(t *testing.T) {
	for _, dryRun := range []bool{false, true} {
		t.Run(fmt.Sprintf("dryRun=%v", dryRun), func(t *testing.T) {
			b := &fakeBackend{model: "Sample-Model", keywords: []string{"aa", "aaa", strings.Repeat("a", 101)}}
			r := &recorder{}
			rep := &reports{}

			err := newTestCreator(b, r, rep, dryRun).CreateKeywords(context.Background(), 3)
			require.NoError(t, err)

			assert.Equal(t, []any{MsgAnomaly}, rep.got)
			assert.Empty(t, r.calls, "no store call expected for an anomalous batch")
		})
	}
}

func TestCreateKeywords_LengthThreshold(t *testing.T) {
	tests := []struct {
		name     string
		keyword  string
		rejected bool
	}{
		{name: "100 ascii accepted", keyword: strings.Repeat("a", 100)},
		{name: "101 ascii rejected", keyword: strings.Repeat("a", 101), rejected: true},
		{name: "100 kana accepted", keyword: strings.Repeat("あ", 100)},
		{name: "101 kana rejected", keyword: strings.Repeat("あ", 101), rejected: true},
		{name: "empty accepted", keyword: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{model: "m", keywords: []string{"ok", tt.keyword}}
			r := &recorder{}
			rep := &reports{}

			require.NoError(t, newTestCreator(b, r, rep, false).CreateKeywords(context.Background(), 2))

			if tt.rejected {
				assert.Equal(t, []any{MsgAnomaly}, rep.got)
				assert.Empty(t, r.calls)
			} else {
				assert.Empty(t, rep.got)
				assert.Len(t, r.args("UpsertKeyword"), 2)
			}
		})
	}
}

func TestCreateKeywords_DryRunReportsOnly(t *testing.T) {
	b := &fakeBackend{model: "Sample-Model", keywords: []string{"hoge", "fuga", "piyo"}}
	r := &recorder{}
	rep := &reports{}

	require.NoError(t, newTestCreator(b, r, rep, true).CreateKeywords(context.Background(), 3))

	assert.Equal(t, []any{MsgDryRun, LabelKeywords, []string{"hoge", "fuga", "piyo"}}, rep.got)
	assert.Empty(t, r.calls, "dry run must not touch the store")
	assert.Equal(t, 3, b.gotCount)
}

func TestCreateKeywords_SavesEachKeyword(t *testing.T) {
	b := &fakeBackend{model: "Sample-Model", keywords: []string{"hoge", "fuga", "piyo"}}
	r := &recorder{}
	rep := &reports{}

	require.NoError(t, newTestCreator(b, r, rep, false).CreateKeywords(context.Background(), 3))

	want := []any{
		types.Keyword{Text: "hoge", CreateCount: 1, UseCount: 0, ModelName: "Sample-Model"},
		types.Keyword{Text: "fuga", CreateCount: 1, UseCount: 0, ModelName: "Sample-Model"},
		types.Keyword{Text: "piyo", CreateCount: 1, UseCount: 0, ModelName: "Sample-Model"},
	}
	assert.Equal(t, want, r.args("UpsertKeyword"))
	assert.Equal(t, []string{"UpsertKeyword", "UpsertKeyword", "UpsertKeyword"}, r.names(),
		"keywords are upserted without any existence check")
	assert.Empty(t, rep.got)
}

func TestCreateKeywords_DuplicatesAreUpsertedAsGiven(t *testing.T) {
	b := &fakeBackend{model: "m", keywords: []string{"hoge", "hoge"}}
	r := &recorder{}

	require.NoError(t, newTestCreator(b, r, &reports{}, false).CreateKeywords(context.Background(), 2))
	assert.Len(t, r.args("UpsertKeyword"), 2)
}

func TestCreateKeywords_GenerationErrorPropagates(t *testing.T) {
	genErr := &GenerationError{Op: "generate keywords", Err: errors.New("backend down")}
	b := &fakeBackend{err: genErr}
	r := &recorder{}
	rep := &reports{}

	err := newTestCreator(b, r, rep, false).CreateKeywords(context.Background(), 3)
	assert.Same(t, genErr, err)
	assert.Empty(t, r.calls)
	assert.Empty(t, rep.got)
}

func TestCreateKeywords_StoreErrorStopsBatch(t *testing.T) {
	storeErr := &PersistenceError{Op: "upsert keyword", Err: errors.New("disk full")}
	b := &fakeBackend{model: "m", keywords: []string{"a", "b", "c"}}
	r := &recorder{failOn: "UpsertKeyword", failAt: 2, failErr: storeErr}

	err := newTestCreator(b, r, &reports{}, false).CreateKeywords(context.Background(), 3)
	assert.Same(t, storeErr, err)
	assert.Len(t, r.args("UpsertKeyword"), 2, "the first keyword stays saved, the third is never attempted")
}

// --- GetKeywords ---

func TestGetKeywords_PassesThrough(t *testing.T) {
	r := &recorder{fetched: []string{"x", "y"}}
	c := newTestCreator(&fakeBackend{}, r, &reports{}, false)

	got, err := c.GetKeywords(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)
	assert.Equal(t, []any{10}, r.args("FetchKeywords"))
}

func TestGetKeywords_ReadsInDryRun(t *testing.T) {
	r := &recorder{fetched: []string{"x"}}
	c := newTestCreator(&fakeBackend{}, r, &reports{}, true)

	got, err := c.GetKeywords(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)
}

// --- CreateConcept ---

func TestCreateConcept_DryRunNeverReadsClock(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("%d drafts", n), func(t *testing.T) {
			b := &fakeBackend{model: "Sample-Model", drafts: sampleDrafts(n)}
			r := &recorder{now: batchTime, baseID: 3}
			rep := &reports{}

			err := newTestCreator(b, r, rep, true).CreateConcept(context.Background(), n, []string{"hoge", "fuga"})
			require.NoError(t, err)

			assert.Empty(t, r.calls, "dry run must not read the clock or touch the store")
			require.Len(t, rep.got, 4)
			assert.Equal(t, "generating with keywords: hoge,fuga", rep.got[0])
			assert.Equal(t, MsgDryRun, rep.got[1])
			assert.Equal(t, LabelConcepts, rep.got[2])
			assert.Equal(t, sampleDrafts(n), rep.got[3])
		})
	}
}

func TestCreateConcept_DryRunWithNoSeeds(t *testing.T) {
	b := &fakeBackend{drafts: sampleDrafts(3)}
	rep := &reports{}

	require.NoError(t, newTestCreator(b, &recorder{}, rep, true).CreateConcept(context.Background(), 3, []string{}))
	assert.Equal(t, "generating with keywords: ", rep.got[0])
}

func TestCreateConcept_SavesBatch(t *testing.T) {
	seeds := []string{"hoge", "fuga", "piyo"}
	b := &fakeBackend{model: "Sample-Model", drafts: sampleDrafts(3)}
	r := &recorder{now: batchTime, baseID: 3}
	rep := &reports{}

	require.NoError(t, newTestCreator(b, r, rep, false).CreateConcept(context.Background(), 3, seeds))

	assert.Equal(t, 3, b.gotCount)
	assert.Equal(t, seeds, b.gotSeeds)
	assert.Equal(t, []any{"generating with keywords: hoge,fuga,piyo"}, rep.got)

	wantConcepts := []any{
		types.Concept{ID: 3, NameEn: "name_en_1", NameJp: "name_jp_1", Description: "description_jp_1", ModelName: "Sample-Model", EntryDate: batchTime},
		types.Concept{ID: 4, NameEn: "name_en_2", NameJp: "name_jp_2", Description: "description_jp_2", ModelName: "Sample-Model", EntryDate: batchTime},
		types.Concept{ID: 5, NameEn: "name_en_3", NameJp: "name_jp_3", Description: "description_jp_3", ModelName: "Sample-Model", EntryDate: batchTime},
	}
	if diff := cmp.Diff(wantConcepts, r.args("InsertConcept")); diff != "" {
		t.Errorf("concepts mismatch (-want +got):\n%s", diff)
	}

	wantTags := []any{
		types.Tag{ConceptID: 3, Text: "tag1_1"},
		types.Tag{ConceptID: 3, Text: "tag1_2"},
		types.Tag{ConceptID: 4, Text: "tag2_1"},
		types.Tag{ConceptID: 4, Text: "tag2_2"},
		types.Tag{ConceptID: 5, Text: "tag3_1"},
		types.Tag{ConceptID: 5, Text: "tag3_2"},
	}
	if diff := cmp.Diff(wantTags, r.args("InsertTag")); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []any{seeds}, r.args("MarkKeywordsUsed"), "seeds are marked used once, as one list")
}

func TestCreateConcept_StrictPerDraftOrder(t *testing.T) {
	drafts := []types.Draft{
		{NameEn: "a", TagsJp: []string{"t1", "t2", "t3"}},
		{NameEn: "b"},
		{NameEn: "c", TagsJp: []string{"t4"}},
	}
	b := &fakeBackend{model: "m", drafts: drafts}
	r := &recorder{now: batchTime, baseID: 10}

	require.NoError(t, newTestCreator(b, r, &reports{}, false).CreateConcept(context.Background(), 3, []string{"k"}))

	want := []string{
		"Now",
		"AllocateConceptBaseID",
		"InsertConcept", "InsertTag", "InsertTag", "InsertTag",
		"InsertConcept",
		"InsertConcept", "InsertTag",
		"MarkKeywordsUsed",
	}
	assert.Equal(t, want, r.names())

	var ids []int64
	for _, a := range r.args("InsertConcept") {
		ids = append(ids, a.(types.Concept).ID)
	}
	assert.Equal(t, []int64{10, 11, 12}, ids, "a draft without tags still consumes exactly one id")
}

func TestCreateConcept_ProcessesWhateverIsReturned(t *testing.T) {
	b := &fakeBackend{model: "m", drafts: sampleDrafts(2)}
	r := &recorder{now: batchTime, baseID: 1}

	require.NoError(t, newTestCreator(b, r, &reports{}, false).CreateConcept(context.Background(), 5, []string{"k"}))

	assert.Len(t, r.args("InsertConcept"), 2)
	assert.Len(t, r.args("MarkKeywordsUsed"), 1)
}

func TestCreateConcept_EmptyBatchStillMarksSeeds(t *testing.T) {
	b := &fakeBackend{model: "m"}
	r := &recorder{now: batchTime, baseID: 1}

	require.NoError(t, newTestCreator(b, r, &reports{}, false).CreateConcept(context.Background(), 3, []string{"k1", "k2"}))

	assert.Equal(t, []string{"Now", "AllocateConceptBaseID", "MarkKeywordsUsed"}, r.names())
}

func TestCreateConcept_GenerationErrorAfterSeedReport(t *testing.T) {
	genErr := &GenerationError{Op: "generate concepts", Err: errors.New("bad json")}
	b := &fakeBackend{err: genErr}
	r := &recorder{}
	rep := &reports{}

	err := newTestCreator(b, r, rep, false).CreateConcept(context.Background(), 3, []string{"a"})
	assert.Same(t, genErr, err)
	assert.Equal(t, []any{"generating with keywords: a"}, rep.got)
	assert.Empty(t, r.calls)
}

func TestCreateConcept_TagFailureLeavesEarlierWrites(t *testing.T) {
	storeErr := &PersistenceError{Op: "insert tag", Err: errors.New("constraint")}
	b := &fakeBackend{model: "m", drafts: []types.Draft{{NameEn: "a", TagsJp: []string{"t1", "t2", "t3"}}}}
	r := &recorder{now: batchTime, baseID: 7, failOn: "InsertTag", failAt: 2, failErr: storeErr}

	err := newTestCreator(b, r, &reports{}, false).CreateConcept(context.Background(), 1, []string{"k"})
	assert.Same(t, storeErr, err)

	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "insert tag", perr.Op)

	assert.Equal(t, []string{"Now", "AllocateConceptBaseID", "InsertConcept", "InsertTag", "InsertTag"}, r.names(),
		"no rollback and no use-count update after a failed write")
}

func TestCreateConcept_AllocationFailure(t *testing.T) {
	storeErr := &PersistenceError{Op: "allocate concept id", Err: errors.New("locked")}
	b := &fakeBackend{model: "m", drafts: sampleDrafts(2)}
	r := &recorder{failOn: "AllocateConceptBaseID", failAt: 1, failErr: storeErr}

	err := newTestCreator(b, r, &reports{}, false).CreateConcept(context.Background(), 2, nil)
	assert.Same(t, storeErr, err)
	assert.Equal(t, []string{"Now", "AllocateConceptBaseID"}, r.names())
}

func TestCreateConcept_CallsAreIndependent(t *testing.T) {
	b := &fakeBackend{model: "m", drafts: sampleDrafts(2)}
	r := &recorder{now: batchTime, baseID: 1}
	c := newTestCreator(b, r, &reports{}, false)

	require.NoError(t, c.CreateConcept(context.Background(), 2, []string{"a"}))
	r.baseID = 3
	require.NoError(t, c.CreateConcept(context.Background(), 2, []string{"b"}))

	var ids []int64
	for _, a := range r.args("InsertConcept") {
		ids = append(ids, a.(types.Concept).ID)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids, "each call starts from its own allocated base")
}

func TestNewCreator_NilReporter(t *testing.T) {
	b := &fakeBackend{keywords: []string{strings.Repeat("x", 200)}}
	c := NewCreator(b, &recorder{}, SystemClock{}, nil)
	assert.NoError(t, c.CreateKeywords(context.Background(), 1))
}
