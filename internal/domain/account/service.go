package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"accounts-service/internal/domain/customer"
	"accounts-service/internal/event"
	"accounts-service/internal/infrastructure/monitoring"
	"accounts-service/internal/pkg/apperrors"
)

const (
	resourceCustomer = "Customer"
	resourceAccounts = "Accounts"
)

type AccountService interface {
	CreateAccount(ctx context.Context, details CustomerDetails) error
	FetchAccount(ctx context.Context, mobileNumber string) (*CustomerDetails, error)
	UpdateAccount(ctx context.Context, details CustomerDetails) (bool, error)
	DeleteAccount(ctx context.Context, mobileNumber string) (bool, error)
}

var _ AccountService = (*accountService)(nil)

type accountService struct {
	customerRepo customer.Repository
	accountRepo  Repository
	pub          event.EventPublisher
	logger       *slog.Logger
}

// NewAccountService wires the lifecycle service with its collaborators. The
// event publisher may be nil, in which case lifecycle events are not emitted.
func NewAccountService(customerRepo customer.Repository, accountRepo Repository, pub event.EventPublisher, logger *slog.Logger) AccountService {
	if customerRepo == nil {
		panic("customer repository cannot be nil")
	}
	if accountRepo == nil {
		panic("account repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewAccountService, using default stderr handler")
	}

	return &accountService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		pub:          pub,
		logger:       logger.With(slog.String("component", "accountService")),
	}
}

// newAccountNumber draws a uniform 10-digit account number in
// [1000000000, 1999999999). Uniqueness against existing rows is not verified.
func newAccountNumber() int64 {
	return 1000000000 + rand.Int63n(900000000)
}

func (s *accountService) CreateAccount(ctx context.Context, details CustomerDetails) (err error) {
	logCtx := s.logger.With(slog.String("mobileNumber", details.MobileNumber))
	logCtx.InfoContext(ctx, "Attempting to create new customer and account")

	defer func() {
		monitoring.RecordAccountOperation("create", operationStatus(err))
	}()

	existing, err := s.customerRepo.FindByMobileNumber(ctx, details.MobileNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logCtx.ErrorContext(ctx, "Repository error checking for existing customer", slog.Any("error", err))
		return fmt.Errorf("failed to check for existing customer: %w", err)
	}
	if existing != nil {
		logCtx.WarnContext(ctx, "Customer already registered with this mobile number")
		return apperrors.NewAlreadyExistsError(
			fmt.Sprintf("Customer already registered with the given mobile number %s", details.MobileNumber))
	}

	tx, err := s.customerRepo.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.customerRepo.RollbackTx(ctx, tx) }()

	cust := MapToCustomer(&details, &customer.Customer{})
	if err = s.customerRepo.CreateInTx(ctx, tx, cust); err != nil {
		// The unique index on mobile_number closes the check-then-insert race:
		// a concurrent insert surfaces here as a write conflict.
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			logCtx.WarnContext(ctx, "Concurrent registration detected for mobile number")
			return apperrors.NewAlreadyExistsError(
				fmt.Sprintf("Customer already registered with the given mobile number %s", details.MobileNumber))
		}
		logCtx.ErrorContext(ctx, "Repository failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("failed to save new customer: %w", err)
	}

	acc := &Account{
		AccountNumber: newAccountNumber(),
		CustomerID:    cust.CustomerID,
		AccountType:   TypeSavings,
		BranchAddress: DefaultBranchAddress,
	}
	if err = s.accountRepo.CreateInTx(ctx, tx, acc); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to insert account", slog.Any("error", err))
		return fmt.Errorf("failed to save new account: %w", err)
	}

	if err = s.customerRepo.CommitTx(ctx, tx); err != nil {
		return err
	}

	logCtx.InfoContext(ctx, "Successfully created customer and account",
		slog.Int64("customerID", cust.CustomerID),
		slog.Int64("accountNumber", acc.AccountNumber))

	s.publishAccountCreated(ctx, cust, acc)
	return nil
}

func (s *accountService) FetchAccount(ctx context.Context, mobileNumber string) (details *CustomerDetails, err error) {
	logCtx := s.logger.With(slog.String("mobileNumber", mobileNumber))
	logCtx.InfoContext(ctx, "Attempting to fetch account details")

	defer func() {
		monitoring.RecordAccountOperation("fetch", operationStatus(err))
	}()

	cust, err := s.customerRepo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by mobile number")
			return nil, apperrors.NewNotFoundError(resourceCustomer, "mobileNumber", mobileNumber)
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch customer by mobile number %s: %w", mobileNumber, err)
	}

	acc, err := s.accountRepo.FindByCustomerID(ctx, cust.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Account not found for customer", slog.Int64("customerID", cust.CustomerID))
			return nil, apperrors.NewNotFoundError(resourceAccounts, "customerId", strconv.FormatInt(cust.CustomerID, 10))
		}
		logCtx.ErrorContext(ctx, "Repository error finding account", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch account for customer %d: %w", cust.CustomerID, err)
	}

	details = MapToCustomerDetails(cust, &CustomerDetails{})
	details.Account = MapToAccountDetails(acc, &AccountDetails{})

	logCtx.InfoContext(ctx, "Successfully fetched account details")
	return details, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, details CustomerDetails) (updated bool, err error) {
	logCtx := s.logger.With(slog.String("mobileNumber", details.MobileNumber))
	logCtx.InfoContext(ctx, "Attempting to update customer and account")

	if details.Account == nil {
		logCtx.InfoContext(ctx, "No account data supplied, nothing to update")
		return false, nil
	}

	defer func() {
		monitoring.RecordAccountOperation("update", operationStatus(err))
	}()

	accountNumber := details.Account.AccountNumber
	acc, err := s.accountRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Account not found by account number", slog.Int64("accountNumber", accountNumber))
			return false, apperrors.NewNotFoundError(resourceAccounts, "accountNumber", strconv.FormatInt(accountNumber, 10))
		}
		logCtx.ErrorContext(ctx, "Repository error finding account for update", slog.Any("error", err))
		return false, fmt.Errorf("failed to find account %d for update: %w", accountNumber, err)
	}

	tx, err := s.accountRepo.BeginTx(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = s.accountRepo.RollbackTx(ctx, tx) }()

	MapToAccount(details.Account, acc)
	if err = s.accountRepo.UpdateInTx(ctx, tx, acc); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to update account", slog.Any("error", err))
		return false, fmt.Errorf("failed to update account %d: %w", accountNumber, err)
	}

	cust, err := s.customerRepo.FindByID(ctx, acc.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// The account points at a customer that no longer exists. That is
			// data corruption, not caller error.
			logCtx.ErrorContext(ctx, "Account references a missing customer", slog.Int64("customerID", acc.CustomerID))
			return false, apperrors.NewNotFoundError(resourceCustomer, "customerId", strconv.FormatInt(acc.CustomerID, 10))
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return false, fmt.Errorf("failed to find customer %d for update: %w", acc.CustomerID, err)
	}

	MapToCustomer(&details, cust)
	if err = s.customerRepo.UpdateInTx(ctx, tx, cust); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to update customer", slog.Any("error", err))
		return false, fmt.Errorf("failed to update customer %d: %w", cust.CustomerID, err)
	}

	if err = s.accountRepo.CommitTx(ctx, tx); err != nil {
		return false, err
	}

	logCtx.InfoContext(ctx, "Successfully updated customer and account", slog.Int64("accountNumber", accountNumber))
	return true, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, mobileNumber string) (deleted bool, err error) {
	logCtx := s.logger.With(slog.String("mobileNumber", mobileNumber))
	logCtx.InfoContext(ctx, "Attempting to delete customer and account")

	defer func() {
		monitoring.RecordAccountOperation("delete", operationStatus(err))
	}()

	cust, err := s.customerRepo.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logCtx.WarnContext(ctx, "Customer not found by mobile number for delete")
			return false, apperrors.NewNotFoundError(resourceCustomer, "mobileNumber", mobileNumber)
		}
		logCtx.ErrorContext(ctx, "Repository error finding customer for delete", slog.Any("error", err))
		return false, fmt.Errorf("failed to find customer by mobile number %s: %w", mobileNumber, err)
	}

	tx, err := s.customerRepo.BeginTx(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = s.customerRepo.RollbackTx(ctx, tx) }()

	if err = s.accountRepo.DeleteByCustomerIDInTx(ctx, tx, cust.CustomerID); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to delete accounts", slog.Any("error", err))
		return false, fmt.Errorf("failed to delete accounts for customer %d: %w", cust.CustomerID, err)
	}

	if err = s.customerRepo.DeleteInTx(ctx, tx, cust.CustomerID); err != nil {
		logCtx.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return false, fmt.Errorf("failed to delete customer %d: %w", cust.CustomerID, err)
	}

	if err = s.customerRepo.CommitTx(ctx, tx); err != nil {
		return false, err
	}

	logCtx.InfoContext(ctx, "Successfully deleted customer and accounts", slog.Int64("customerID", cust.CustomerID))

	s.publishAccountDeleted(ctx, cust)
	return true, nil
}

func (s *accountService) publishAccountCreated(ctx context.Context, cust *customer.Customer, acc *Account) {
	if s.pub == nil {
		return
	}
	evt := event.AccountCreatedEvent{
		Timestamp: time.Now(),
		Payload: event.AccountEventPayload{
			CustomerID:    cust.CustomerID,
			AccountNumber: acc.AccountNumber,
			MobileNumber:  cust.MobileNumber,
			AccountType:   acc.AccountType,
		},
	}
	if err := s.pub.PublishAccountCreated(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Account created, but FAILED to publish creation event", slog.Any("error", err))
	} else {
		s.logger.InfoContext(ctx, "Successfully published account creation event")
	}
}

func (s *accountService) publishAccountDeleted(ctx context.Context, cust *customer.Customer) {
	if s.pub == nil {
		return
	}
	evt := event.AccountDeletedEvent{
		Timestamp: time.Now(),
		Payload: event.AccountEventPayload{
			CustomerID:   cust.CustomerID,
			MobileNumber: cust.MobileNumber,
		},
	}
	if err := s.pub.PublishAccountDeleted(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Account deleted, but FAILED to publish deletion event", slog.Any("error", err))
	} else {
		s.logger.InfoContext(ctx, "Successfully published account deletion event")
	}
}

func operationStatus(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
