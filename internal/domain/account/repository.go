package account

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, account *Account) error

	UpdateInTx(ctx context.Context, tx pgx.Tx, account *Account) error

	DeleteByCustomerIDInTx(ctx context.Context, tx pgx.Tx, customerID int64) error

	FindByAccountNumber(ctx context.Context, accountNumber int64) (*Account, error)

	FindByCustomerID(ctx context.Context, customerID int64) (*Account, error)

	// FindOrphaned returns accounts whose customer row no longer exists.
	FindOrphaned(ctx context.Context) ([]*Account, error)

	DeleteByAccountNumber(ctx context.Context, accountNumber int64) error

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
