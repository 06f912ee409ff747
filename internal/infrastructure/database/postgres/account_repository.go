package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"accounts-service/internal/domain/account"
	"accounts-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

type AccountRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ account.Repository = (*AccountRepository)(nil)

func NewAccountRepository(db DBPool, logger *slog.Logger) *AccountRepository {
	if db == nil {
		panic("DBPool cannot be nil for AccountRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAccountRepository, using default stderr handler")
	}
	return &AccountRepository{
		db:     db,
		logger: logger.With("component", "AccountRepository"),
	}
}

func (r *AccountRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}
	return tx, nil
}

func (r *AccountRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Commit(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *AccountRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to rollback transaction: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *AccountRepository) CreateInTx(ctx context.Context, tx pgx.Tx, acc *account.Account) error {
	if acc == nil {
		return fmt.Errorf("%w: account cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new account", slog.Int64("accountNumber", acc.AccountNumber))

	query := `
        INSERT INTO accounts (account_number, customer_id, account_type, branch_address, created_at, created_by, updated_at, updated_by)
        VALUES ($1, $2, $3, $4, NOW(), $5, NOW(), $5)
        RETURNING created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		acc.AccountNumber,
		acc.CustomerID,
		acc.AccountType,
		acc.BranchAddress,
		auditActor,
	).Scan(
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert account due to unique constraint violation", slog.Int64("accountNumber", acc.AccountNumber))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert account: %w", apperrors.ErrDatabase, err)
	}

	acc.CreatedBy = auditActor
	acc.UpdatedBy = auditActor

	r.logger.InfoContext(ctx, "Account inserted successfully", slog.Int64("accountNumber", acc.AccountNumber))
	return nil
}

func (r *AccountRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, acc *account.Account) error {
	if acc == nil {
		return fmt.Errorf("%w: account cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to update account", slog.Int64("accountNumber", acc.AccountNumber))

	query := `
        UPDATE accounts
        SET account_type = $1,
            branch_address = $2,
            updated_at = NOW(),
            updated_by = $3
        WHERE account_number = $4`

	cmdTag, err := tx.Exec(ctx, query,
		acc.AccountType,
		acc.BranchAddress,
		auditActor,
		acc.AccountNumber,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update account: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, account likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Account updated successfully")
	return nil
}

// DeleteByCustomerIDInTx is a bulk delete: removing zero rows is not an error.
func (r *AccountRepository) DeleteByCustomerIDInTx(ctx context.Context, tx pgx.Tx, customerID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete accounts for customer", slog.Int64("customerID", customerID))

	query := `DELETE FROM accounts WHERE customer_id = $1`

	cmdTag, err := tx.Exec(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete accounts", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete accounts: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Accounts deleted", slog.Int64("rows", cmdTag.RowsAffected()))
	return nil
}

func (r *AccountRepository) FindByAccountNumber(ctx context.Context, accountNumber int64) (*account.Account, error) {
	r.logger.InfoContext(ctx, "Attempting to find account by account number")

	query := `
        SELECT account_number, customer_id, account_type, branch_address, created_at, created_by, updated_at, updated_by
        FROM accounts
        WHERE account_number = $1`

	return r.findOne(ctx, query, accountNumber)
}

func (r *AccountRepository) FindByCustomerID(ctx context.Context, customerID int64) (*account.Account, error) {
	r.logger.InfoContext(ctx, "Attempting to find account by customer ID")

	query := `
        SELECT account_number, customer_id, account_type, branch_address, created_at, created_by, updated_at, updated_by
        FROM accounts
        WHERE customer_id = $1`

	return r.findOne(ctx, query, customerID)
}

func (r *AccountRepository) findOne(ctx context.Context, query string, arg any) (*account.Account, error) {
	var acc account.Account
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&acc.AccountNumber,
		&acc.CustomerID,
		&acc.AccountType,
		&acc.BranchAddress,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.UpdatedAt,
		&acc.UpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Account not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan account", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get account: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Account found successfully")
	return &acc, nil
}

func (r *AccountRepository) FindOrphaned(ctx context.Context) ([]*account.Account, error) {
	r.logger.InfoContext(ctx, "Attempting to find orphaned accounts")

	query := `
        SELECT a.account_number, a.customer_id, a.account_type, a.branch_address, a.created_at, a.created_by, a.updated_at, a.updated_by
        FROM accounts a
        LEFT JOIN customers c ON c.customer_id = a.customer_id
        WHERE c.customer_id IS NULL
        ORDER BY a.account_number ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query orphaned accounts", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query orphaned accounts: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	accounts := make([]*account.Account, 0)
	for rows.Next() {
		var acc account.Account
		err := rows.Scan(
			&acc.AccountNumber,
			&acc.CustomerID,
			&acc.AccountType,
			&acc.BranchAddress,
			&acc.CreatedAt,
			&acc.CreatedBy,
			&acc.UpdatedAt,
			&acc.UpdatedBy,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan orphaned account row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan orphaned account row: %w", apperrors.ErrDatabase, err)
		}
		accounts = append(accounts, &acc)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating orphaned account rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating orphaned account rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding orphaned accounts", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (r *AccountRepository) DeleteByAccountNumber(ctx context.Context, accountNumber int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete account", slog.Int64("accountNumber", accountNumber))

	query := `DELETE FROM accounts WHERE account_number = $1`

	cmdTag, err := r.db.Exec(ctx, query, accountNumber)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete account: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, account likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Account deleted successfully")
	return nil
}
