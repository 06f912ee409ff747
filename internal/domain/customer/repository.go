package customer

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, customer *Customer) error

	UpdateInTx(ctx context.Context, tx pgx.Tx, customer *Customer) error

	DeleteInTx(ctx context.Context, tx pgx.Tx, customerID int64) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindByMobileNumber(ctx context.Context, mobileNumber string) (*Customer, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
