package repositories

import (
	"testing"

	"monametro/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBusRepo(t *testing.T) (BusRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return BusRepository{DB: db}, mock
}

func TestListActiveFiltersOnStatus(t *testing.T) {
	repo, mock := newBusRepo(t)

	mock.ExpectQuery(`WHERE status = 'active'`).
		WillReturnRows(sqlmock.NewRows([]string{
			"bus_id", "origin", "destination", "via", "departure_time", "arrival_time", "cost", "status",
		}).
			AddRow(1, "Mona Campus", "Half Way Tree", "Hope Road", "07:00", "07:45", 300.0, "active").
			AddRow(2, "Mona Campus", "Papine", "UWI Ring Road", "08:00", "08:15", 300.0, "active"))

	buses, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, buses, 2)
	assert.Equal(t, "Half Way Tree", buses[0].Destination)
	assert.Equal(t, 300.0, buses[1].Cost)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusMissingBus(t *testing.T) {
	repo, mock := newBusRepo(t)

	mock.ExpectExec(`UPDATE buses SET status = \?`).
		WithArgs("inactive", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM buses`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := repo.SetStatus(99, "inactive")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusNoopWhenAlreadyInState(t *testing.T) {
	repo, mock := newBusRepo(t)

	mock.ExpectExec(`UPDATE buses SET status = \?`).
		WithArgs("active", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM buses`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	require.NoError(t, repo.SetStatus(1, "active"))
	require.NoError(t, mock.ExpectationsWereMet())
}
