package booking

import (
	"context"
	"testing"
	"time"

	"thryve/internal/pack"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func pendingBooking() *Booking {
	now := time.Now()
	return &Booking{
		ID:              "b1",
		ClassInstanceID: "7-2024-06-01-09:00",
		ClassID:         7,
		UserID:          42,
		StartTime:       now.Add(2 * time.Hour),
		EndTime:         now.Add(3 * time.Hour),
		PriceCents:      2000,
		PaymentStatus:   PaymentPending,
		Type:            TypeDropIn,
	}
}

func bookingRows(b *Booking) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "class_instance_id", "class_id", "user_id", "start_time", "end_time",
		"price_cents", "status", "payment_status", "booking_type", "created_at",
	}).AddRow(b.ID, b.ClassInstanceID, b.ClassID, b.UserID, b.StartTime, b.EndTime,
		b.PriceCents, "confirmed", string(b.PaymentStatus), string(b.Type), time.Now())
}

func TestCreateConfirmed_Success(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	b := pendingBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT capacity FROM class_instances").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(10))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(bookingRows(b))
	mock.ExpectCommit()

	created, err := repo.CreateConfirmed(context.Background(), b, false)

	require.NoError(t, err)
	assert.Equal(t, "b1", created.ID)
	assert.Equal(t, StatusConfirmed, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func balanceRows(credits int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "user_id", "credits", "created_at", "updated_at"}).
		AddRow(3, 42, credits, now, now)
}

func TestCreateConfirmed_PackDebitSameTransaction(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	b := pendingBooking()
	b.PriceCents = 0
	b.Type = TypeClassPack

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT capacity FROM class_instances").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(10))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(bookingRows(b))
	mock.ExpectQuery("SELECT id, user_id, credits").
		WithArgs(42).
		WillReturnRows(balanceRows(5))
	mock.ExpectExec("UPDATE pack_balances").
		WithArgs(4, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO pack_transactions").
		WithArgs(3, -1, "class_booking", 4).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	created, err := repo.CreateConfirmed(context.Background(), b, true)

	require.NoError(t, err)
	assert.Equal(t, "b1", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmed_PackDebitInsufficientRollsBack(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	b := pendingBooking()
	b.PriceCents = 0
	b.Type = TypeClassPack

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT capacity FROM class_instances").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(10))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(bookingRows(b))
	mock.ExpectQuery("SELECT id, user_id, credits").
		WithArgs(42).
		WillReturnRows(balanceRows(0))
	// The empty balance aborts the whole transaction; no booking survives.
	mock.ExpectRollback()

	created, err := repo.CreateConfirmed(context.Background(), b, true)

	assert.ErrorIs(t, err, pack.ErrInsufficientCredits)
	assert.Nil(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmed_ClassFull(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	b := pendingBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT capacity FROM class_instances").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(10))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
	mock.ExpectRollback()

	created, err := repo.CreateConfirmed(context.Background(), b, false)

	assert.ErrorIs(t, err, ErrClassFull)
	assert.Nil(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmed_InstanceNotBookable(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	b := pendingBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT capacity FROM class_instances").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}))
	mock.ExpectRollback()

	_, err := repo.CreateConfirmed(context.Background(), b, false)

	assert.ErrorIs(t, err, ErrInstanceNotBookable)
}

func TestCreateConfirmed_DuplicateBooking(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	b := pendingBooking()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT capacity FROM class_instances").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"capacity"}).AddRow(10))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM bookings").
		WithArgs(b.ClassInstanceID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.CreateConfirmed(context.Background(), b, false)

	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestCancel(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE bookings").
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(42))
	mock.ExpectCommit()

	err := repo.Cancel(context.Background(), "b1", false)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_RefundsPackCredit(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE bookings").
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(42))
	mock.ExpectQuery("SELECT id, user_id, credits").
		WithArgs(42).
		WillReturnRows(balanceRows(4))
	mock.ExpectExec("UPDATE pack_balances").
		WithArgs(5, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO pack_transactions").
		WithArgs(3, 1, "booking_refund", 5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.Cancel(context.Background(), "b1", true)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE bookings").
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectRollback()

	err := repo.Cancel(context.Background(), "b1", false)

	assert.ErrorIs(t, err, ErrBookingNotFoundOrAlreadyCancelled)
}

func TestGetUserBookings(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "class_instance_id", "class_id", "user_id", "start_time", "end_time",
		"price_cents", "status", "payment_status", "booking_type", "created_at",
		"class_name", "instructor_name",
	}).AddRow("b1", "i1", 7, 42, now, now.Add(time.Hour), 2000, "confirmed", "pending", "drop_in", now, "Morning Yoga", "Dana")

	mock.ExpectQuery("SELECT").
		WithArgs(42).
		WillReturnRows(rows)

	bookings, err := repo.GetUserBookings(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "Morning Yoga", bookings[0].ClassName)
}
