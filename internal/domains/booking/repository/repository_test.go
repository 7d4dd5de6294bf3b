package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/repository"
	gDto "hotel/shared/dto"
)

const overlapQuery = `SELECT EXISTS\(SELECT 1 FROM bookings\s+WHERE \(room_id = \$1 AND check_in_date <= \$2 AND check_out_date >= \$3\)\s*\)`

func day(value string) time.Time {
	d, _ := time.Parse(time.DateOnly, value)

	return d
}

func newTx(t *testing.T) (repository.Booking, *sqlx.Tx, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := sqlx.NewDb(sqlDB, "postgres")

	sqlMock.ExpectBegin()

	tx, err := db.Beginx()
	require.NoError(t, err)

	return repository.New(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel()), tx, sqlMock
}

func TestOverlapFilter_WhereClause(t *testing.T) {
	filter := repository.OverlapFilter(101, day("2024-03-05"), day("2024-03-08"))

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(room_id = :room_id AND check_in_date <= :requested_check_out AND check_out_date >= :requested_check_in)", where)
	assert.Equal(t, map[string]any{
		"room_id":             int64(101),
		"requested_check_out": day("2024-03-08"),
		"requested_check_in":  day("2024-03-05"),
	}, args)
}

// matches evaluates the overlap predicate against one stored stay the way the
// store would, operator by operator.
func matches(t *testing.T, filter gDto.FilterGroup, row map[string]any) bool {
	t.Helper()

	for _, f := range filter.Filters {
		cond, ok := f.(gDto.Filter)
		require.True(t, ok)

		switch value := row[cond.Field].(type) {
		case int64:
			if cond.Operator != gDto.FilterOperatorEq || value != cond.Value.(int64) {
				return false
			}
		case time.Time:
			bound := cond.Value.(time.Time)

			switch cond.Operator {
			case gDto.FilterOperatorLessEq:
				if value.After(bound) {
					return false
				}
			case gDto.FilterOperatorGreaterEq:
				if value.Before(bound) {
					return false
				}
			default:
				t.Fatalf("unexpected operator %s on %s", cond.Operator, cond.Field)
			}
		default:
			t.Fatalf("no value for %s", cond.Field)
		}
	}

	return true
}

func TestOverlapFilter_Boundaries(t *testing.T) {
	stored := func(roomID int64, checkIn, checkOut string) map[string]any {
		return map[string]any{
			"room_id":        roomID,
			"check_in_date":  day(checkIn),
			"check_out_date": day(checkOut),
		}
	}

	tests := []struct {
		name     string
		existing map[string]any
		checkIn  string
		checkOut string
		want     bool
	}{
		{name: "check-out day equals requested check-in", existing: stored(101, "2024-03-01", "2024-03-05"), checkIn: "2024-03-05", checkOut: "2024-03-08", want: true},
		{name: "check-in day equals requested check-out", existing: stored(101, "2024-03-08", "2024-03-10"), checkIn: "2024-03-05", checkOut: "2024-03-08", want: true},
		{name: "existing contains request", existing: stored(101, "2024-03-01", "2024-03-20"), checkIn: "2024-03-05", checkOut: "2024-03-08", want: true},
		{name: "request contains existing", existing: stored(101, "2024-03-06", "2024-03-07"), checkIn: "2024-03-05", checkOut: "2024-03-08", want: true},
		{name: "ends the day before", existing: stored(101, "2024-03-01", "2024-03-04"), checkIn: "2024-03-05", checkOut: "2024-03-08", want: false},
		{name: "starts the day after", existing: stored(101, "2024-03-09", "2024-03-12"), checkIn: "2024-03-05", checkOut: "2024-03-08", want: false},
		{name: "other room", existing: stored(102, "2024-03-01", "2024-03-20"), checkIn: "2024-03-05", checkOut: "2024-03-08", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := repository.OverlapFilter(101, day(tt.checkIn), day(tt.checkOut))

			assert.Equal(t, tt.want, matches(t, filter, tt.existing))
		})
	}
}

func TestRepository_OverlapsTx(t *testing.T) {
	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		queryErr error
		want     bool
		wantErr  bool
	}{
		{
			name: "touching stay found",
			rows: sqlmock.NewRows([]string{"exists"}).AddRow(true),
			want: true,
		},
		{
			name: "room free",
			rows: sqlmock.NewRows([]string{"exists"}).AddRow(false),
		},
		{
			name:     "store error",
			queryErr: errors.New("connection reset by peer"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, tx, sqlMock := newTx(t)

			query := sqlMock.
				ExpectPrepare(overlapQuery).
				ExpectQuery().
				WithArgs(101, day("2024-03-08"), day("2024-03-05"))

			if tt.queryErr != nil {
				query.WillReturnError(tt.queryErr)
			} else {
				query.WillReturnRows(tt.rows)
			}

			got, err := repo.OverlapsTx(context.Background(), tx, 101, day("2024-03-05"), day("2024-03-08"))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.queryErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)

			sqlMock.ExpectRollback()
			require.NoError(t, tx.Rollback())
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}
