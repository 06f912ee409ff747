package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"accounts-service/internal/domain/account"
	"accounts-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

var accountTest = &account.Account{
	AccountNumber: 1365766735,
	CustomerID:    1,
	AccountType:   account.TypeSavings,
	BranchAddress: account.DefaultBranchAddress,
}

func setupAccountRepo(t *testing.T) (context.Context, *AccountRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewAccountRepository(mockPool, testLogger)

	return ctx, repo, mockPool
}

func TestAccountCreateInTxWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	query := `
        INSERT INTO accounts (account_number, customer_id, account_type, branch_address, created_at, created_by, updated_at, updated_by)
        VALUES ($1, $2, $3, $4, NOW(), $5, NOW(), $5)
        RETURNING created_at, updated_at`

	mockPool.ExpectBegin()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		accountTest.AccountNumber,
		accountTest.CustomerID,
		accountTest.AccountType,
		accountTest.BranchAddress,
		auditActor,
	).WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).
		AddRow(time.Now(), time.Now()))
	mockPool.ExpectCommit()

	tx, err := repo.BeginTx(ctx)
	assert.NoError(t, err)

	acc := &account.Account{
		AccountNumber: accountTest.AccountNumber,
		CustomerID:    accountTest.CustomerID,
		AccountType:   accountTest.AccountType,
		BranchAddress: accountTest.BranchAddress,
	}
	err = repo.CreateInTx(ctx, tx, acc)
	assert.NoError(t, err)
	assert.Equal(t, auditActor, acc.CreatedBy)
	assert.False(t, acc.CreatedAt.IsZero())

	assert.NoError(t, repo.CommitTx(ctx, tx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountUpdateInTxWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE accounts").WithArgs(
		accountTest.AccountType,
		accountTest.BranchAddress,
		auditActor,
		accountTest.AccountNumber,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectCommit()

	tx, err := repo.BeginTx(ctx)
	assert.NoError(t, err)

	err = repo.UpdateInTx(ctx, tx, accountTest)
	assert.NoError(t, err)

	assert.NoError(t, repo.CommitTx(ctx, tx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountUpdateInTxWhenNoRowsAffected(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE accounts").WithArgs(
		accountTest.AccountType,
		accountTest.BranchAddress,
		auditActor,
		accountTest.AccountNumber,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectRollback()

	tx, err := repo.BeginTx(ctx)
	assert.NoError(t, err)

	err = repo.UpdateInTx(ctx, tx, accountTest)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, repo.RollbackTx(ctx, tx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountDeleteByCustomerIDInTxDeletesAllRows(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM accounts WHERE customer_id = $1`)).
		WithArgs(accountTest.CustomerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mockPool.ExpectCommit()

	tx, err := repo.BeginTx(ctx)
	assert.NoError(t, err)

	err = repo.DeleteByCustomerIDInTx(ctx, tx, accountTest.CustomerID)
	assert.NoError(t, err)

	assert.NoError(t, repo.CommitTx(ctx, tx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountDeleteByCustomerIDInTxWithZeroRowsIsNotAnError(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectBegin()
	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM accounts WHERE customer_id = $1`)).
		WithArgs(accountTest.CustomerID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mockPool.ExpectCommit()

	tx, err := repo.BeginTx(ctx)
	assert.NoError(t, err)

	err = repo.DeleteByCustomerIDInTx(ctx, tx, accountTest.CustomerID)
	assert.NoError(t, err)

	assert.NoError(t, repo.CommitTx(ctx, tx))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountFindByAccountNumberWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	rows := pgxmock.NewRows([]string{
		"account_number", "customer_id", "account_type", "branch_address",
		"created_at", "created_by", "updated_at", "updated_by",
	}).AddRow(
		accountTest.AccountNumber, accountTest.CustomerID, accountTest.AccountType, accountTest.BranchAddress,
		time.Now(), auditActor, time.Now(), auditActor,
	)

	mockPool.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(accountTest.AccountNumber).
		WillReturnRows(rows)

	acc, err := repo.FindByAccountNumber(ctx, accountTest.AccountNumber)
	assert.NoError(t, err)
	assert.NotNil(t, acc)
	assert.Equal(t, accountTest.AccountNumber, acc.AccountNumber)
	assert.Equal(t, accountTest.CustomerID, acc.CustomerID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountFindByCustomerIDWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT (.+) FROM accounts").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	acc, err := repo.FindByCustomerID(ctx, int64(99))
	assert.Error(t, err)
	assert.Nil(t, acc)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountFindOrphanedReturnsRows(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	rows := pgxmock.NewRows([]string{
		"account_number", "customer_id", "account_type", "branch_address",
		"created_at", "created_by", "updated_at", "updated_by",
	}).AddRow(
		int64(1365766735), int64(7), account.TypeSavings, account.DefaultBranchAddress,
		time.Now(), auditActor, time.Now(), auditActor,
	).AddRow(
		int64(1412345678), int64(8), account.TypeSavings, account.DefaultBranchAddress,
		time.Now(), auditActor, time.Now(), auditActor,
	)

	mockPool.ExpectQuery("SELECT (.+) FROM accounts a").WillReturnRows(rows)

	orphans, err := repo.FindOrphaned(ctx)
	assert.NoError(t, err)
	assert.Len(t, orphans, 2)
	assert.Equal(t, int64(1365766735), orphans[0].AccountNumber)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountDeleteByAccountNumberWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectExec(regexp.QuoteMeta(`DELETE FROM accounts WHERE account_number = $1`)).
		WithArgs(accountTest.AccountNumber).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteByAccountNumber(ctx, accountTest.AccountNumber)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
