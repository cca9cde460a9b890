// AngelaMos | 2026
// repository_test.go

package generation

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/viralboost/internal/core"
)

var fixedNow = time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRepository(sqlx.NewDb(db, "pgx"), func() time.Time { return fixedNow })
	return repo, mock
}

func TestStartOfDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC on the 15th is still the 14th in New York.
	at := time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC)

	got := StartOfDay(at, ny)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, ny), got)

	assert.Equal(t,
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartOfDay(at, nil),
	)
}

func TestInsertThenCountToday(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()
	since := StartOfDay(fixedNow, time.UTC)

	countQuery := regexp.QuoteMeta("SELECT COUNT(*) FROM generations WHERE user_id = $1 AND created_at >= $2")

	mock.ExpectQuery(countQuery).
		WithArgs("user-1", since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO generations")).
		WithArgs(
			sqlmock.AnyArg(),
			"user-1",
			"Fitness & Health",
			"Go Viral",
			"Reels Idea",
			"hook",
			"caption",
			"#fitness",
			nil,
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(fixedNow))

	mock.ExpectQuery(countQuery).
		WithArgs("user-1", since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	before, err := repo.CountToday(ctx, "user-1", time.UTC)
	require.NoError(t, err)

	g, err := repo.Insert(ctx, "user-1", Fields{
		Niche:       "Fitness & Health",
		Goal:        "Go Viral",
		ContentType: "Reels Idea",
		Hook:        "hook",
		Caption:     "caption",
		Hashtags:    "#fitness",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "user-1", g.UserID)
	assert.Equal(t, fixedNow, g.CreatedAt)
	assert.Nil(t, g.CTA)

	after, err := repo.CountToday(ctx, "user-1", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertFailureIsPersistenceError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO generations")).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Insert(context.Background(), "user-1", Fields{Niche: "n"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPersistence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTodayNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	cta := "Follow for more tips like this! 🔥"

	cols := []string{
		"id", "user_id", "niche", "goal", "content_type",
		"hook", "caption", "hashtags", "cta", "created_at",
	}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("user-1", StartOfDay(fixedNow, time.UTC)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("g2", "user-1", "Technology", "Get Sales", "Meme",
				"h2", "c2", "#t", cta, fixedNow).
			AddRow("g1", "user-1", "Technology", "Go Viral", "Story",
				"h1", "c1", "#t", nil, fixedNow.Add(-time.Hour)))

	list, err := repo.ListToday(context.Background(), "user-1", time.UTC)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "g2", list[0].ID)
	require.NotNil(t, list[0].CTA)
	assert.Equal(t, cta, *list[0].CTA)
	assert.Nil(t, list[1].CTA)
	assert.NoError(t, mock.ExpectationsWereMet())
}
