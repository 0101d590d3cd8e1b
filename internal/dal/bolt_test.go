package dal_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.etcd.io/bbolt"

	"github.com/Roma7-7-7/fuel-stations/internal/dal"
	"github.com/Roma7-7-7/fuel-stations/internal/dal/migrations"
	"github.com/Roma7-7-7/fuel-stations/internal/dal/testutil"
)

type BoltDBTestSuite struct {
	suite.Suite
	db    *bbolt.DB
	store *dal.BoltDB
}

// SetupSuite runs ONCE before all tests in the suite
func (s *BoltDBTestSuite) SetupSuite() {
	db, err := bbolt.Open(filepath.Join(s.T().TempDir(), "test.db"), 0600, nil)
	s.Require().NoError(err)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Quiet during tests
	}))
	s.Require().NoError(migrations.RunMigrations(db, log))

	s.db = db
	s.store, err = dal.NewBoltDB(db)
	s.Require().NoError(err)
}

func (s *BoltDBTestSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
}

// TearDownTest keeps the same DB but removes test data
func (s *BoltDBTestSuite) TearDownTest() {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range []string{"stations", "snapshots"} {
			b := tx.Bucket([]byte(bucket))
			s.Require().NotNilf(b, "bucket: %v", bucket)
			var keys [][]byte
			s.Require().NoError(b.ForEach(func(k, _ []byte) error {
				keys = append(keys, append([]byte(nil), k...))
				return nil
			}))
			for _, k := range keys {
				s.Require().NoError(b.Delete(k))
			}
		}
		return nil
	})
	s.Require().NoError(err)
}

func TestBoltDBTestSuite(t *testing.T) {
	suite.Run(t, new(BoltDBTestSuite))
}

func (s *BoltDBTestSuite) TestBoltDB_GetSnapshot_Empty() {
	snap, ok, err := s.store.GetSnapshot()
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(snap)

	st, ok, err := s.store.GetStation("1")
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(st)
}

func (s *BoltDBTestSuite) TestBoltDB_PutSnapshot() {
	first := testutil.NewSnapshot().WithStations(
		testutil.NewStation("10").Build(),
		testutil.NewStation("2").WithBrand("CEPSA").Build(),
		testutil.NewStation("7").WithoutCoordinates().WithSchedule("").Build(),
	).Build()
	s.Require().NoError(s.store.PutSnapshot(first))

	snap, ok, err := s.store.GetSnapshot()
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(first.SourceDate, snap.SourceDate)
	s.True(first.FetchedAt.Equal(snap.FetchedAt))
	s.Equal([]dal.Station{
		testutil.NewStation("2").WithBrand("CEPSA").Build(),
		testutil.NewStation("7").WithoutCoordinates().WithSchedule("").Build(),
		testutil.NewStation("10").Build(),
	}, snap.Stations, "stations are ordered by numeric id")

	st, ok, err := s.store.GetStation("2")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("CEPSA", st.Brand)

	second := testutil.NewSnapshot().WithSourceDate("18/11/2025 10:00:00").WithStations(
		testutil.NewStation("3").Build(),
	).Build()
	s.Require().NoError(s.store.PutSnapshot(second))

	snap, ok, err = s.store.GetSnapshot()
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("18/11/2025 10:00:00", snap.SourceDate)
	s.Equal([]dal.Station{testutil.NewStation("3").Build()}, snap.Stations, "previous stations are replaced")

	_, ok, err = s.store.GetStation("2")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *BoltDBTestSuite) TestBoltDB_PutSnapshot_Empty() {
	s.Require().NoError(s.store.PutSnapshot(testutil.NewSnapshot().Build()))

	snap, ok, err := s.store.GetSnapshot()
	s.Require().NoError(err)
	s.True(ok)
	s.Empty(snap.Stations)
}

func (s *BoltDBTestSuite) TestBoltDB_PutSnapshot_LeadingZeros() {
	snap := testutil.NewSnapshot().WithStations(
		testutil.NewStation("123").Build(),
		testutil.NewStation("0123").WithBrand("CEPSA").Build(),
	).Build()
	s.Require().NoError(s.store.PutSnapshot(snap))

	got, ok, err := s.store.GetSnapshot()
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Len(got.Stations, 2)

	st, ok, err := s.store.GetStation("0123")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("CEPSA", st.Brand)

	st, ok, err = s.store.GetStation("123")
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("REPSOL", st.Brand)
}

func (s *BoltDBTestSuite) TestBoltDB_PutSnapshot_Duplicate() {
	s.Require().NoError(s.store.PutSnapshot(testutil.NewSnapshot().WithStations(
		testutil.NewStation("1").Build(),
	).Build()))

	err := s.store.PutSnapshot(testutil.NewSnapshot().WithSourceDate("18/11/2025 10:00:00").WithStations(
		testutil.NewStation("5").Build(),
		testutil.NewStation("5").WithBrand("CEPSA").Build(),
	).Build())
	testutil.AssertErrorIsAndContains(dal.ErrDuplicateStation, "id=5")(s.T(), err)

	snap, ok, err := s.store.GetSnapshot()
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(testutil.NewSnapshot().Build().SourceDate, snap.SourceDate, "failed snapshot is rolled back")
	s.Equal([]dal.Station{testutil.NewStation("1").Build()}, snap.Stations)
}

func TestNewBoltDB_NotMigrated(t *testing.T) {
	db, err := bbolt.Open(filepath.Join(t.TempDir(), "test.db"), 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	_, err = dal.NewBoltDB(db)
	assert.ErrorIs(t, err, dal.ErrBucketMissing)
}
