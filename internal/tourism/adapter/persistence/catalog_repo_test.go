package persistence_test

import (
	"context"
	"testing"
	"time"

	"sarawak-tourism/internal/shared/docstore"
	"sarawak-tourism/internal/tourism/adapter/persistence"
	"sarawak-tourism/internal/tourism/domain/model"
	"sarawak-tourism/internal/tourism/testutil"

	"github.com/stretchr/testify/suite"
)

type CatalogRepoTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *docstore.MemoryStore
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *CatalogRepoTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = docstore.NewMemoryStore()
	s.Require().NoError(testutil.Seed(s.ctx, s.store,
		testutil.Attraction("a1", "Bako National Park", "Nature", "Adventure"),
		testutil.Attraction("a2", "Sarawak Cultural Village", "Culture"),
		testutil.Attraction("a3", "Top Spot Food Court", "Foods"),
		testutil.Event("e3", "Rainforest World Music Festival", "Festivals", day(2024, time.August, 2)),
		testutil.Event("e1", "Gawai Dayak", "Culture", day(2024, time.June, 1)),
		testutil.Event("e2", "Kuching Food Festival", "Foods", day(2024, time.July, 31)),
		testutil.Holiday(day(2025, time.January, 1), "New Year"),
		testutil.Holiday(day(2024, time.December, 25), "Christmas"),
		testutil.Holiday(day(2024, time.June, 1), "Gawai Dayak"),
	))
}

func (s *CatalogRepoTestSuite) TestAttractions_CategoryMembershipAndLocation() {
	repo := persistence.NewAttractionRepository(s.store)

	out, err := repo.Find(s.ctx, model.AttractionFilter{Categories: []string{"Nature"}})
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal("a1", out[0].ID)

	out, err = repo.Find(s.ctx, model.AttractionFilter{Categories: []string{"Culture", "Foods"}})
	s.Require().NoError(err)
	s.Len(out, 2)

	out, err = repo.Find(s.ctx, model.AttractionFilter{Location: "kUcH"})
	s.Require().NoError(err)
	s.Len(out, 3)

	out, err = repo.Find(s.ctx, model.AttractionFilter{Limit: 2})
	s.Require().NoError(err)
	s.Len(out, 2)
	s.Equal("a1", out[0].ID)
}

func (s *CatalogRepoTestSuite) TestAttractions_GetByID() {
	repo := persistence.NewAttractionRepository(s.store)

	a, err := repo.GetByID(s.ctx, "a2")
	s.Require().NoError(err)
	s.Equal("Sarawak Cultural Village", a.Name)

	_, err = repo.GetByID(s.ctx, "nope")
	s.ErrorIs(err, model.ErrNotFound)

	n, err := repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), n)
}

func (s *CatalogRepoTestSuite) TestEvents_InclusiveRangeSortedByStart() {
	repo := persistence.NewEventRepository(s.store)
	from, to := day(2024, time.July, 1), day(2024, time.July, 31)

	out, err := repo.Find(s.ctx, model.EventFilter{From: &from, To: &to})
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal("e2", out[0].ID)

	out, err = repo.Find(s.ctx, model.EventFilter{})
	s.Require().NoError(err)
	s.Require().Len(out, 3)
	s.Equal([]string{"e1", "e2", "e3"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func (s *CatalogRepoTestSuite) TestHolidays_HalfOpenRangeSortedByDate() {
	repo := persistence.NewHolidayRepository(s.store)
	from, until := day(2024, time.January, 1), day(2025, time.January, 1)

	out, err := repo.Find(s.ctx, model.HolidayFilter{From: &from, Until: &until})
	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Equal("Gawai Dayak", out[0].Name)
	s.Equal("Christmas", out[1].Name)
}

func (s *CatalogRepoTestSuite) TestAnalytics_Filters() {
	s.Require().NoError(testutil.Seed(s.ctx, s.store,
		&model.VisitorAnalytics{Year: 2024, Month: 1, Country: "Malaysia", VisitorType: "domestic", Count: 100},
		&model.VisitorAnalytics{Year: 2024, Month: 2, Country: "Singapore", VisitorType: "international", Count: 40},
		&model.VisitorAnalytics{Year: 2023, Month: 1, Country: "Malaysia", VisitorType: "domestic", Count: 90},
	))
	repo := persistence.NewAnalyticsRepository(s.store)

	out, err := repo.Find(s.ctx, model.AnalyticsFilter{Year: 2024})
	s.Require().NoError(err)
	s.Len(out, 2)

	out, err = repo.Find(s.ctx, model.AnalyticsFilter{Country: "Malaysia", Month: 1})
	s.Require().NoError(err)
	s.Len(out, 2)

	out, err = repo.Find(s.ctx, model.AnalyticsFilter{VisitorType: "international"})
	s.Require().NoError(err)
	s.Require().Len(out, 1)
	s.Equal(int64(40), out[0].Count)
}

func TestCatalogRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogRepoTestSuite))
}
