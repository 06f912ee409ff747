package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"accounts-service/internal/domain/customer"
	"accounts-service/internal/infrastructure/monitoring"
	"accounts-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v3"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

// auditActor is recorded in the created_by/updated_by columns on every write.
const auditActor = "ACCOUNTS_MS"

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Repository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", apperrors.ErrDatabase, err)
	}
	return tx, nil
}

func (r *CustomerRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Commit(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to commit transaction: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *CustomerRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", slog.Any("error", err))
		return fmt.Errorf("%w: failed to rollback transaction: %w", apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *CustomerRepository) CreateInTx(ctx context.Context, tx pgx.Tx, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("mobileNumber", cust.MobileNumber))

	query := `
        INSERT INTO customers (name, email, mobile_number, created_at, created_by, updated_at, updated_by)
        VALUES ($1, $2, $3, NOW(), $4, NOW(), $4)
        RETURNING customer_id, created_at, updated_at`

	err := tx.QueryRow(ctx, query,
		cust.Name,
		cust.Email,
		cust.MobileNumber,
		auditActor,
	).Scan(
		&cust.CustomerID,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			// Unique index on mobile_number.
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation", slog.String("mobileNumber", cust.MobileNumber))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	cust.CreatedBy = auditActor
	cust.UpdatedBy = auditActor

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.CustomerID))
	return nil
}

func (r *CustomerRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", cust.CustomerID))

	query := `
        UPDATE customers
        SET name = $1,
            email = $2,
            mobile_number = $3,
            updated_at = NOW(),
            updated_by = $4
        WHERE customer_id = $5`

	cmdTag, err := tx.Exec(ctx, query,
		cust.Name,
		cust.Email,
		cust.MobileNumber,
		auditActor,
		cust.CustomerID,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to update customer due to unique constraint violation", slog.Any("error", err))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, customerID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete customer", slog.Int64("customerID", customerID))

	query := `DELETE FROM customers WHERE customer_id = $1`

	cmdTag, err := tx.Exec(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer deleted successfully")
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customer by ID")

	query := `
        SELECT customer_id, name, email, mobile_number, created_at, created_by, updated_at, updated_by
        FROM customers
        WHERE customer_id = $1`

	return r.findOne(ctx, "FindCustomerByID", query, customerID)
}

func (r *CustomerRepository) FindByMobileNumber(ctx context.Context, mobileNumber string) (*customer.Customer, error) {
	r.logger.InfoContext(ctx, "Attempting to find customer by mobile number")

	query := `
        SELECT customer_id, name, email, mobile_number, created_at, created_by, updated_at, updated_by
        FROM customers
        WHERE mobile_number = $1`

	return r.findOne(ctx, "FindCustomerByMobileNumber", query, mobileNumber)
}

func (r *CustomerRepository) findOne(ctx context.Context, queryName, query string, arg any) (*customer.Customer, error) {
	status := "success"
	startTime := time.Now()

	var cust customer.Customer
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&cust.CustomerID,
		&cust.Name,
		&cust.Email,
		&cust.MobileNumber,
		&cust.CreatedAt,
		&cust.CreatedBy,
		&cust.UpdatedAt,
		&cust.UpdatedBy,
	)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery(queryName, status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Customer not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer found successfully")
	return &cust, nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
