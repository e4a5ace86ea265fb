package dbreminder

import (
	"context"
	"fmt"
	"path/filepath"
	c "rewatch/internal/core/domain/common"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/db"
	"rewatch/internal/db/document"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newReminder(id reminder.ID) reminder.Reminder {
	return reminder.New(
		id,
		reminder.Video{
			ResourceID: "abc",
			URL:        "https://www.youtube.com/watch?v=abc",
			Title:      "T",
			Channel:    "C",
			Thumbnail:  "https://img.youtube.com/vi/abc/mqdefault.jpg",
		},
		reminder.EveryHour,
		c.Optional[string]{},
		CreatedAt,
	)
}

type testSuite struct {
	suite.Suite
	newDocument func() document.Document
	repo        *Repository
}

func (s *testSuite) SetupTest() {
	s.repo = New(s.newDocument())
}

func (s *testSuite) ids() []reminder.ID {
	reminders, err := s.repo.List(context.Background())
	s.Require().NoError(err)
	ids := make([]reminder.ID, 0, len(reminders))
	for _, rem := range reminders {
		ids = append(ids, rem.ID)
	}
	return ids
}

func (s *testSuite) TestEmptyStoreLists() {
	reminders, err := s.repo.List(context.Background())

	assert := s.Require()
	assert.NoError(err)
	assert.Empty(reminders)
}

func (s *testSuite) TestAppendKeepsOrderAndRoundTrips() {
	ctx := context.Background()
	assert := s.Require()
	first := newReminder("b")
	first.Note = c.NewOptional("watch again", true)
	first.LastTriggered = c.NewOptional(CreatedAt.Add(time.Minute), true)
	assert.NoError(s.repo.Append(ctx, first))
	assert.NoError(s.repo.Append(ctx, newReminder("a")))

	reminders, err := s.repo.List(ctx)
	assert.NoError(err)
	assert.Equal([]reminder.ID{"b", "a"}, s.ids())
	assert.Equal(first, reminders[0])
	assert.False(reminders[1].Note.IsPresent)
	assert.False(reminders[1].LastTriggered.IsPresent)
}

func (s *testSuite) TestAppendRejectsDuplicates() {
	ctx := context.Background()
	assert := s.Require()
	assert.NoError(s.repo.Append(ctx, newReminder("a")))

	err := s.repo.Append(ctx, newReminder("a"))

	assert.ErrorIs(err, reminder.ErrReminderAlreadyExists)
	assert.Equal([]reminder.ID{"a"}, s.ids())
}

func (s *testSuite) TestRemoveByID() {
	ctx := context.Background()
	assert := s.Require()
	for _, id := range []reminder.ID{"a", "b", "c"} {
		assert.NoError(s.repo.Append(ctx, newReminder(id)))
	}

	assert.NoError(s.repo.RemoveByID(ctx, "b"))
	assert.NoError(s.repo.RemoveByID(ctx, "missing"))

	assert.Equal([]reminder.ID{"a", "c"}, s.ids())
}

func (s *testSuite) TestReplaceAll() {
	ctx := context.Background()
	assert := s.Require()
	assert.NoError(s.repo.Append(ctx, newReminder("a")))

	assert.NoError(s.repo.ReplaceAll(ctx, []reminder.Reminder{newReminder("x"), newReminder("y")}))
	assert.Equal([]reminder.ID{"x", "y"}, s.ids())

	assert.NoError(s.repo.ReplaceAll(ctx, nil))
	assert.Empty(s.ids())
}

func (s *testSuite) TestUpdate() {
	ctx := context.Background()
	assert := s.Require()
	assert.NoError(s.repo.Append(ctx, newReminder("a")))
	firedAt := CreatedAt.Add(time.Hour)

	updated, err := s.repo.Update(ctx, "a", func(r *reminder.Reminder) { r.Triggered(firedAt) })
	assert.NoError(err)
	assert.Equal(firedAt.Add(time.Hour), updated.NextReminder)

	reminders, _ := s.repo.List(ctx)
	assert.Equal(updated, reminders[0])

	_, err = s.repo.Update(ctx, "missing", func(r *reminder.Reminder) {})
	assert.ErrorIs(err, reminder.ErrReminderDoesNotExist)
}

func (s *testSuite) TestRetain() {
	ctx := context.Background()
	assert := s.Require()
	for _, id := range []reminder.ID{"a", "b", "c"} {
		assert.NoError(s.repo.Append(ctx, newReminder(id)))
	}

	dropped, err := s.repo.Retain(ctx, func(r reminder.Reminder) bool { return r.ID != "b" })
	assert.NoError(err)
	assert.Len(dropped, 1)
	assert.Equal(reminder.ID("b"), dropped[0].ID)
	assert.Equal([]reminder.ID{"a", "c"}, s.ids())

	dropped, err = s.repo.Retain(ctx, func(r reminder.Reminder) bool { return true })
	assert.NoError(err)
	assert.Empty(dropped)
}

func (s *testSuite) TestConcurrentAppendsAreNotLost() {
	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.repo.Append(ctx, newReminder(reminder.ID(fmt.Sprintf("r%d", i))))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}
	s.Require().Len(s.ids(), 10)
}

func TestSqliteRepository(t *testing.T) {
	suite.Run(t, &testSuite{newDocument: func() document.Document {
		store, err := document.OpenSqlite(
			context.Background(),
			filepath.Join(t.TempDir(), "rewatch.db"),
			"",
		)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { store.Close() })
		return store
	}})
}

func TestPostgresRepository(t *testing.T) {
	if !db.HasTestDatabase() {
		t.Skip("TEST_POSTGRESQL_URL is not set")
	}
	var pool *pgxpool.Pool = db.CreateTestPool()
	defer pool.Close()

	suite.Run(t, &testSuite{newDocument: func() document.Document {
		db.TruncateTables(pool)
		store, err := document.NewPostgres(context.Background(), pool, "")
		if err != nil {
			t.Fatal(err)
		}
		return store
	}})
}
