package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type place struct {
	ID         string    `bson:"_id"`
	Name       string    `bson:"name"`
	Location   string    `bson:"location"`
	Categories []string  `bson:"categories"`
	Rating     int       `bson:"rating"`
	OpensAt    time.Time `bson:"opens_at"`
}

type MemoryStoreTestSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
	base  time.Time
}

func (s *MemoryStoreTestSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.ctx = context.Background()
	s.base = time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	places := []place{
		{ID: "p1", Name: "Bako National Park", Location: "Kuching", Categories: []string{"Nature", "Adventure"}, Rating: 5, OpensAt: s.base.Add(48 * time.Hour)},
		{ID: "p2", Name: "Sarawak Cultural Village", Location: "Santubong, KUCHING", Categories: []string{"Culture"}, Rating: 4, OpensAt: s.base},
		{ID: "p3", Name: "Niah Caves", Location: "Miri", Categories: []string{"Nature"}, Rating: 3, OpensAt: s.base.Add(24 * time.Hour)},
	}
	for _, p := range places {
		s.Require().NoError(s.store.Insert(s.ctx, "places", p))
	}
}

func (s *MemoryStoreTestSuite) TestFind_NilQueryReturnsAllInInsertionOrder() {
	var got []place
	s.Require().NoError(s.store.Find(s.ctx, "places", nil, &got))
	s.Require().Len(got, 3)
	s.Equal("p1", got[0].ID)
	s.Equal("p2", got[1].ID)
	s.Equal("p3", got[2].ID)
}

func (s *MemoryStoreTestSuite) TestFind_EqMatchesArrayElement() {
	var got []place
	err := s.store.Find(s.ctx, "places", NewQuery().Eq("categories", "Nature"), &got)
	s.Require().NoError(err)
	s.Len(got, 2)
	for _, p := range got {
		s.Contains(p.Categories, "Nature")
	}
}

func (s *MemoryStoreTestSuite) TestFind_InMatchesAnyCandidate() {
	var got []place
	err := s.store.Find(s.ctx, "places", NewQuery().Where("categories", OpIn, []string{"Culture", "Adventure"}), &got)
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *MemoryStoreTestSuite) TestFind_ContainsFoldIgnoresCase() {
	var got []place
	err := s.store.Find(s.ctx, "places", NewQuery().Where("location", OpContainsFold, "kuch"), &got)
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *MemoryStoreTestSuite) TestFind_ContainsFoldTreatsInputLiterally() {
	var got []place
	err := s.store.Find(s.ctx, "places", NewQuery().Where("location", OpContainsFold, ".*"), &got)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *MemoryStoreTestSuite) TestFind_RangeOnTimeSortedAscending() {
	q := NewQuery().
		Where("opens_at", OpGte, s.base.Add(time.Hour)).
		Where("opens_at", OpLte, s.base.Add(72*time.Hour)).
		OrderBy("opens_at", false)

	var got []place
	s.Require().NoError(s.store.Find(s.ctx, "places", q, &got))
	s.Require().Len(got, 2)
	s.Equal("p3", got[0].ID)
	s.Equal("p1", got[1].ID)
}

func (s *MemoryStoreTestSuite) TestFind_NumericComparisonAcrossIntTypes() {
	var got []place
	err := s.store.Find(s.ctx, "places", NewQuery().Where("rating", OpGt, int64(3)).OrderBy("rating", true), &got)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal(5, got[0].Rating)
	s.Equal(4, got[1].Rating)
}

func (s *MemoryStoreTestSuite) TestFind_Limit() {
	var got []place
	s.Require().NoError(s.store.Find(s.ctx, "places", NewQuery().WithLimit(2), &got))
	s.Len(got, 2)
}

func (s *MemoryStoreTestSuite) TestFind_PointerElements() {
	var got []*place
	s.Require().NoError(s.store.Find(s.ctx, "places", ByID("p2"), &got))
	s.Require().Len(got, 1)
	s.Equal("Sarawak Cultural Village", got[0].Name)
}

func (s *MemoryStoreTestSuite) TestFind_RejectsNonSliceTarget() {
	var got place
	err := s.store.Find(s.ctx, "places", nil, &got)
	s.ErrorIs(err, ErrInvalidTarget)
}

func (s *MemoryStoreTestSuite) TestFindOne() {
	var got place
	s.Require().NoError(s.store.FindOne(s.ctx, "places", ByID("p3"), &got))
	s.Equal("Niah Caves", got.Name)
	s.True(got.OpensAt.Equal(s.base.Add(24 * time.Hour)))

	err := s.store.FindOne(s.ctx, "places", ByID("missing"), &got)
	s.ErrorIs(err, ErrNotFound)
}

func (s *MemoryStoreTestSuite) TestCountIgnoresLimit() {
	n, err := s.store.Count(s.ctx, "places", NewQuery().Eq("categories", "Nature").WithLimit(1))
	s.Require().NoError(err)
	s.Equal(int64(2), n)

	n, err = s.store.Count(s.ctx, "empty", nil)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *MemoryStoreTestSuite) TestInsert_DuplicateID() {
	err := s.store.Insert(s.ctx, "places", place{ID: "p1", Name: "again"})
	s.ErrorIs(err, ErrDuplicate)
}

func (s *MemoryStoreTestSuite) TestInsert_UniqueIndex() {
	s.Require().NoError(s.store.EnsureIndex(s.ctx, "places", Index{Field: "name", Unique: true}))
	s.Require().NoError(s.store.EnsureIndex(s.ctx, "places", Index{Field: "name", Unique: true}))

	err := s.store.Insert(s.ctx, "places", place{ID: "p9", Name: "Niah Caves"})
	s.ErrorIs(err, ErrDuplicate)

	s.NoError(s.store.Insert(s.ctx, "places", place{ID: "p9", Name: "Mulu Caves"}))
}

func (s *MemoryStoreTestSuite) TestDeleteOne() {
	n, err := s.store.DeleteOne(s.ctx, "places", NewQuery().Eq("categories", "Nature"))
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	var got []place
	s.Require().NoError(s.store.Find(s.ctx, "places", nil, &got))
	s.Require().Len(got, 2)
	s.Equal("p2", got[0].ID)

	n, err = s.store.DeleteOne(s.ctx, "places", ByID("missing"))
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *MemoryStoreTestSuite) TestDecodedDocumentsAreCopies() {
	var first place
	s.Require().NoError(s.store.FindOne(s.ctx, "places", ByID("p1"), &first))
	first.Categories[0] = "Changed"

	var second place
	s.Require().NoError(s.store.FindOne(s.ctx, "places", ByID("p1"), &second))
	s.Equal("Nature", second.Categories[0])
}

func (s *MemoryStoreTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.store.Count(ctx, "places", nil)
	s.ErrorIs(err, context.Canceled)
	s.ErrorIs(s.store.Ping(ctx), context.Canceled)
}

func TestMemoryStoreTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreTestSuite))
}

func TestSortCompare_NullFirst(t *testing.T) {
	assert.Equal(t, -1, sortCompare(nil, 1))
	assert.Equal(t, 1, sortCompare("a", int32(2)))
	assert.Equal(t, 0, sortCompare(int32(2), 2.0))
}

func TestMemoryStore_InsertGeneratesID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "notes", map[string]interface{}{"text": "hello"}))
	require.NoError(t, store.Insert(ctx, "notes", map[string]interface{}{"text": "hello"}))

	n, err := store.Count(ctx, "notes", NewQuery().Eq("text", "hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
