package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"accounts-service/internal/domain/customer"
	"accounts-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

const pgxmockExpectationsNotMetMsg = "pgxmock expectations not met"

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var customerTest = &customer.Customer{
	CustomerID:   1,
	Name:         "Madan Reddy",
	Email:        "madan@example.com",
	MobileNumber: "4354437687",
}

func setupCustomerRepo(t *testing.T) (context.Context, *CustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewCustomerRepository(mockPool, testLogger)

	return ctx, repo, mockPool
}

func TestCustomerCreateInTxWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	query := `
        INSERT INTO customers (name, email, mobile_number, created_at, created_by, updated_at, updated_by)
        VALUES ($1, $2, $3, NOW(), $4, NOW(), $4)
        RETURNING customer_id, created_at, updated_at`

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		customerTest.Name,
		customerTest.Email,
		customerTest.MobileNumber,
		auditActor,
	).WillReturnRows(pgxmock.NewRows([]string{"customer_id", "created_at", "updated_at"}).
		AddRow(int64(1), time.Now(), time.Now()))
	mockPool.ExpectCommit()

	tx, err := repo.BeginTx(ctx)
	assert.NoError(t, err)

	cust := &customer.Customer{
		Name:         customerTest.Name,
		Email:        customerTest.Email,
		MobileNumber: customerTest.MobileNumber,
	}
	err = repo.CreateInTx(ctx, tx, cust)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cust.CustomerID)
	assert.Equal(t, auditActor, cust.CreatedBy)

	assert.NoError(t, repo.CommitTx(ctx, tx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerCreateInTxWhenDuplicateMobileNumber(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectQuery("INSERT INTO customers").WithArgs(
		customerTest.Name,
		customerTest.Email,
		customerTest.MobileNumber,
		auditActor,
	).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_mobile_number_key"})
	mockPool.ExpectRollback()

	tx, err := repo.BeginTx(ctx)
	assert.NoError(t, err)

	cust := &customer.Customer{
		Name:         customerTest.Name,
		Email:        customerTest.Email,
		MobileNumber: customerTest.MobileNumber,
	}
	err = repo.CreateInTx(ctx, tx, cust)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	assert.NoError(t, repo.RollbackTx(ctx, tx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerUpdateInTxWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	query := `
        UPDATE customers
        SET name = $1,
            email = $2,
            mobile_number = $3,
            updated_at = NOW(),
            updated_by = $4
        WHERE customer_id = $5`

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		customerTest.Name,
		customerTest.Email,
		customerTest.MobileNumber,
		auditActor,
		customerTest.CustomerID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectCommit()

	tx, err := repo.BeginTx(ctx)
	assert.NoError(t, err)

	err = repo.UpdateInTx(ctx, tx, customerTest)
	assert.NoError(t, err)

	assert.NoError(t, repo.CommitTx(ctx, tx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerUpdateInTxWhenNoRowsAffected(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE customers").WithArgs(
		customerTest.Name,
		customerTest.Email,
		customerTest.MobileNumber,
		auditActor,
		customerTest.CustomerID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectRollback()

	tx, err := repo.BeginTx(ctx)
	assert.NoError(t, err)

	err = repo.UpdateInTx(ctx, tx, customerTest)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, repo.RollbackTx(ctx, tx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerDeleteInTxWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM customers WHERE customer_id = $1`)).
		WithArgs(customerTest.CustomerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mockPool.ExpectCommit()

	tx, err := repo.BeginTx(ctx)
	assert.NoError(t, err)

	err = repo.DeleteInTx(ctx, tx, customerTest.CustomerID)
	assert.NoError(t, err)

	assert.NoError(t, repo.CommitTx(ctx, tx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerFindByMobileNumberWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	rows := pgxmock.NewRows([]string{
		"customer_id", "name", "email", "mobile_number",
		"created_at", "created_by", "updated_at", "updated_by",
	}).AddRow(
		customerTest.CustomerID, customerTest.Name, customerTest.Email, customerTest.MobileNumber,
		time.Now(), auditActor, time.Now(), auditActor,
	)

	mockPool.ExpectQuery("SELECT (.+) FROM customers").
		WithArgs(customerTest.MobileNumber).
		WillReturnRows(rows)

	cust, err := repo.FindByMobileNumber(ctx, customerTest.MobileNumber)
	assert.NoError(t, err)
	assert.NotNil(t, cust)
	assert.Equal(t, customerTest.CustomerID, cust.CustomerID)
	assert.Equal(t, customerTest.MobileNumber, cust.MobileNumber)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerFindByMobileNumberWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT (.+) FROM customers").
		WithArgs("9999999999").
		WillReturnError(pgx.ErrNoRows)

	cust, err := repo.FindByMobileNumber(ctx, "9999999999")
	assert.Error(t, err)
	assert.Nil(t, cust)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerFindByIDWhenDatabaseError(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT (.+) FROM customers").
		WithArgs(customerTest.CustomerID).
		WillReturnError(errors.New("connection reset"))

	cust, err := repo.FindByID(ctx, customerTest.CustomerID)
	assert.Error(t, err)
	assert.Nil(t, cust)
	assert.ErrorIs(t, err, apperrors.ErrDatabase)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
