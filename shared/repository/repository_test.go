package repository_test

import (
	"context"
	"errors"
	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/shared/dto"
	"hotel/shared/repository"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guest struct {
	GuestID int64  `db:"guest_id" generated:"true"`
	Email   string `db:"email"`
	Phone   string `db:"phone"`
}

func newRepository(t *testing.T) (repository.Repository[guest], sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := sqlx.NewDb(sqlDB, "postgres")
	conn := &postgres.Connection{Read: db, Write: db}

	return repository.NewRepository[guest]("guest", "guests", "guest_id", conn, mocks.NewOtel()), sqlMock
}

func byEmail(email string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "email", Value: email, Operator: dto.FilterOperatorEq, Table: "guests"},
		},
	}
}

func TestRepository_InsertColumnsSkipGenerated(t *testing.T) {
	repo, _ := newRepository(t)

	assert.Equal(t, []string{"email", "phone"}, repo.InsertColumns)
}

func TestRepository_InsertIfAbsent(t *testing.T) {
	tests := []struct {
		name         string
		rows         *sqlmock.Rows
		queryErr     error
		wantID       int64
		wantInserted bool
		wantErr      bool
	}{
		{
			name:         "new guest",
			rows:         sqlmock.NewRows([]string{"guest_id"}).AddRow(5),
			wantID:       5,
			wantInserted: true,
		},
		{
			name: "email already present",
			rows: sqlmock.NewRows([]string{"guest_id"}),
		},
		{
			name:     "store error",
			queryErr: errors.New("connection reset by peer"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, sqlMock := newRepository(t)

			query := sqlMock.
				ExpectPrepare(`INSERT INTO guests \(email, phone\) VALUES \(\$1, \$2\) ON CONFLICT \(email\) DO NOTHING RETURNING guest_id`).
				ExpectQuery().
				WithArgs("ada@example.com", "")

			if tt.queryErr != nil {
				query.WillReturnError(tt.queryErr)
			} else {
				query.WillReturnRows(tt.rows)
			}

			id, inserted, err := repo.InsertIfAbsent(context.Background(), guest{Email: "ada@example.com"}, "email")
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.queryErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantInserted, inserted)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Exist(t *testing.T) {
	repo, sqlMock := newRepository(t)

	sqlMock.
		ExpectPrepare(`SELECT EXISTS\(SELECT 1 FROM guests\s+WHERE \(guests\.email = \$1\)\s*\)`).
		ExpectQuery().
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exist, err := repo.Exist(context.Background(), byEmail("ada@example.com"))

	require.NoError(t, err)
	assert.True(t, exist)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_ExistRequiresFilter(t *testing.T) {
	repo, sqlMock := newRepository(t)

	_, err := repo.Exist(context.Background(), dto.FilterGroup{})

	require.Error(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_GetMissingRow(t *testing.T) {
	repo, sqlMock := newRepository(t)

	sqlMock.
		ExpectPrepare(`SELECT guests\.guest_id, guests\.email, guests\.phone FROM guests`).
		ExpectQuery().
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"guest_id", "email", "phone"}))

	got, err := repo.Get(context.Background(), byEmail("nobody@example.com"))

	require.NoError(t, err)
	assert.Zero(t, got.GuestID)
}

func TestRepository_GetAllPaginates(t *testing.T) {
	repo, sqlMock := newRepository(t)

	sqlMock.
		ExpectPrepare(`SELECT guests\.guest_id, guests\.email FROM guests\s+WHERE \(guests\.email = \$1\)\s+ORDER BY guest_id DESC LIMIT \$2 OFFSET \$3`).
		ExpectQuery().
		WithArgs("ada@example.com", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"guest_id", "email"}).AddRow(5, "ada@example.com"))

	params := dto.QueryParams{Page: 2, Limit: 10, SortBy: "guest_id", SortDir: dto.SortDirDesc}

	got, err := repo.GetAll(context.Background(), params, byEmail("ada@example.com"), "guest_id", "email")

	require.NoError(t, err)
	assert.Equal(t, []guest{{GuestID: 5, Email: "ada@example.com"}}, got)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRepository_Count(t *testing.T) {
	repo, sqlMock := newRepository(t)

	sqlMock.
		ExpectPrepare(`SELECT COUNT\(guests\.guest_id\) FROM guests`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), dto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
