package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic/infras/otel/mocks"
	"clinic/infras/postgres"
	"clinic/internal/domains/booking/model"
	"clinic/internal/domains/booking/repository"
	"clinic/shared"
	"clinic/shared/failure"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func sampleBooking() model.Booking {
	return model.Booking{
		ContactName:     "Ann",
		ContactPhone:    "555-0101",
		ServiceID:       "svc-1",
		ServiceName:     "Cleaning",
		ServiceDuration: 30,
		BookingDate:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		EndTime:         "09:30",
		Status:          model.StatusPending,
		Source:          model.SourceOnline,
	}
}

func TestBookingRepository_Create(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`INSERT INTO bookings \(id, contact_name`).WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Create(context.Background(), sampleBooking())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CreateKeepsGivenID(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(1, 1))

	booking := sampleBooking()
	booking.ID = "b-fixed"

	created, err := repo.Create(context.Background(), booking)
	require.NoError(t, err)
	assert.Equal(t, "b-fixed", created.ID)
}

func TestBookingRepository_CreateSlotTaken(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_active_slot_uidx"})

	_, err := repo.Create(context.Background(), sampleBooking())
	require.Error(t, err)

	assert.ErrorIs(t, err, failure.SlotTakenError)
	assert.Equal(t, 409, failure.GetCode(err))
}

func TestBookingRepository_CreateOtherError(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`INSERT INTO bookings`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), sampleBooking())
	require.Error(t, err)
	assert.Equal(t, 500, failure.GetCode(err))
}

func TestBookingRepository_UpdateSlotTaken(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`UPDATE bookings SET`).WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Update(context.Background(),
		map[string]any{model.FieldStatus: model.StatusConfirmed},
		shared.FilterByID("b-1", model.FieldID, model.TableName))

	assert.ErrorIs(t, err, failure.SlotTakenError)
}

func TestBookingRepository_Update(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectExec(`UPDATE bookings SET status = \$1\s+WHERE \(bookings.id = \$2\)`).
		WithArgs(model.StatusCancelled, "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(),
		map[string]any{model.FieldStatus: model.StatusCancelled},
		shared.FilterByID("b-1", model.FieldID, model.TableName))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_FindByDate(t *testing.T) {
	repo, mock := newRepository(t)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	provider := "dr-a"

	rows := sqlmock.NewRows([]string{"id", "contact_name", "booking_date", "start_time", "end_time", "status", "provider_id"}).
		AddRow("b-1", "Ann", date, "09:00", "09:30", model.StatusConfirmed, provider).
		AddRow("b-2", "Ben", date, "10:00", "10:30", model.StatusCancelled, nil)

	mock.ExpectPrepare(`SELECT .+ FROM bookings .*bookings.booking_date = \$1.*ORDER BY bookings.start_time ASC`).
		ExpectQuery().
		WithArgs("2025-06-10").
		WillReturnRows(rows)

	bookings, err := repo.FindByDate(context.Background(), "2025-06-10")
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	assert.Equal(t, "dr-a", bookings[0].Provider())
	assert.Equal(t, "", bookings[1].Provider())
	assert.Equal(t, model.StatusCancelled, bookings[1].Status)
	assert.Equal(t, "2025-06-10", bookings[0].Date())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_FindByDateEmpty(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT .+ FROM bookings`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	bookings, err := repo.FindByDate(context.Background(), "2025-06-11")
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestBookingRepository_FindByDateError(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare(`SELECT .+ FROM bookings`).
		ExpectQuery().
		WillReturnError(errors.New("read replica unavailable"))

	_, err := repo.FindByDate(context.Background(), "2025-06-11")
	assert.Error(t, err)
}

func TestBookingRepository_FindByDateForUpdateReadsWritePool(t *testing.T) {
	readDB, readMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = readDB.Close() })

	writeDB, writeMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = writeDB.Close() })

	repo := repository.New(&postgres.Connection{
		Read:  sqlx.NewDb(readDB, "postgres"),
		Write: sqlx.NewDb(writeDB, "postgres"),
	}, mocks.NewOtel())

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	writeMock.ExpectPrepare(`SELECT .+ FROM bookings .*bookings.booking_date = \$1.*ORDER BY bookings.start_time ASC`).
		ExpectQuery().
		WithArgs("2025-06-10").
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_date", "start_time", "status"}).
			AddRow("b-just-committed", date, "09:00", model.StatusPending))

	bookings, err := repo.FindByDateForUpdate(context.Background(), "2025-06-10")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b-just-committed", bookings[0].ID)

	assert.NoError(t, writeMock.ExpectationsWereMet())
	assert.NoError(t, readMock.ExpectationsWereMet(), "the replica must not be queried")
}
