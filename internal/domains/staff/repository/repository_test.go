package repository_test

import (
	"context"
	"testing"
	"time"

	"clinic/infras/otel/mocks"
	"clinic/infras/postgres"
	"clinic/internal/domains/staff/model"
	"clinic/internal/domains/staff/repository"
	gDto "clinic/shared/dto"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffRepository_GetAllProviders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	repo := repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel())

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRole, Operator: gDto.FilterOperatorEq, Value: model.RoleDentist, Table: model.TableName},
			gDto.Filter{Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
		},
	}

	now := time.Now()
	mock.ExpectPrepare(`FROM staff +WHERE \(staff\.role = \$1 AND staff\.active = \$2\)`).
		ExpectQuery().
		WithArgs(model.RoleDentist, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "active", "working_days", "working_hours", "created_at", "modified_at", "created_by", "modified_by"}).
			AddRow("dr-lee", "Dr. Lee", model.RoleDentist, true, "mon,wed,fri", "12:00-20:00", now, now, "system", "system"))

	staff, err := repo.GetAll(context.Background(), gDto.QueryParams{}, filter)
	require.NoError(t, err)

	require.Len(t, staff, 1)
	assert.True(t, staff[0].IsProvider())
	assert.NoError(t, mock.ExpectationsWereMet())
}
