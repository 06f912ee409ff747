package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"accounts-service/internal/domain/account"
	"accounts-service/internal/infrastructure/monitoring"
	"accounts-service/internal/pkg/apperrors"
)

// OrphanedAccountsJob removes account rows whose owning customer no longer
// exists. Such rows can only appear through out-of-band writes, since the
// service deletes customers and their accounts in one transaction.
type OrphanedAccountsJob struct {
	accountRepo account.Repository
	logger      *slog.Logger
}

func NewOrphanedAccountsJob(accountRepo account.Repository, logger *slog.Logger) *OrphanedAccountsJob {
	if accountRepo == nil || logger == nil {
		panic("OrphanedAccountsJob dependencies cannot be nil")
	}
	return &OrphanedAccountsJob{
		accountRepo: accountRepo,
		logger:      logger.With("job", "OrphanedAccounts"),
	}
}

func (j *OrphanedAccountsJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting orphaned accounts reconcile job.")

	orphans, err := j.accountRepo.FindOrphaned(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to find orphaned accounts, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to find orphaned accounts: %w", err)
	}

	if len(orphans) == 0 {
		j.logger.InfoContext(ctx, "No orphaned accounts found.", slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	j.logger.InfoContext(ctx, "Found orphaned accounts.", slog.Int("count", len(orphans)))

	var removedCount, errorCount int
	for _, orphan := range orphans {
		logCtx := j.logger.With(slog.Int64("accountNumber", orphan.AccountNumber), slog.Int64("customerID", orphan.CustomerID))

		deleteErr := j.accountRepo.DeleteByAccountNumber(ctx, orphan.AccountNumber)
		if deleteErr != nil {
			if errors.Is(deleteErr, apperrors.ErrNotFound) {
				logCtx.WarnContext(ctx, "Orphaned account already removed.")
				continue
			}
			logCtx.ErrorContext(ctx, "Failed to delete orphaned account", slog.Any("error", deleteErr))
			errorCount++
			continue
		}

		monitoring.RecordOrphanedAccountRemoved()
		removedCount++
		logCtx.InfoContext(ctx, "Orphaned account removed.")
	}

	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("orphans_found", len(orphans)),
		slog.Int("orphans_removed", removedCount),
		slog.Int("errors_encountered", errorCount),
	)
	if errorCount > 0 {
		summaryLog.WarnContext(ctx, "Orphaned accounts reconcile job finished with errors.")
		return fmt.Errorf("job completed with %d errors", errorCount)
	}

	summaryLog.InfoContext(ctx, "Orphaned accounts reconcile job finished successfully.")
	return nil
}
