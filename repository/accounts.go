package repository

import (
	"context"
	"time"

	"github.com/logichain/backend/auth"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DeactivationReason is recorded when an account with order history is
// deactivated instead of deleted.
const DeactivationReason = "Account deactivated: User has existing order history."

var resetAccountPasswordSQL = `UPDATE "accounts" AS "acc"
SET
	"password_hash" = ?,
	"updated_at" = ?
WHERE
	"acc"."id" = ?
RETURNING *;`

var updateAccountApprovalSQL = `UPDATE "accounts" AS "acc"
SET
	"approval_status" = ?,
	"approved_by" = ?,
	"approved_at" = ?,
	"rejection_reason" = ?,
	"updated_at" = ?
WHERE
	"acc"."id" = ?
RETURNING *;`

// Accounts is the account repository surface. It satisfies
// auth.AccountStore so the auth flows can run against it directly.
type Accounts interface {
	auth.AccountStore

	List(ctx context.Context) ([]*auth.Account, error)
	UpdateProfile(ctx context.Context, account *auth.Account) (*auth.Account, error)
	UpdateApproval(ctx context.Context, id uuid.UUID, status auth.ApprovalStatus, approvedBy uuid.UUID, reason string) (*auth.Account, error)
	HasOrderHistory(ctx context.Context, id uuid.UUID) (bool, error)
	DeactivateOrDelete(ctx context.Context, id uuid.UUID) (deleted bool, err error)
}

type accounts struct {
	repo repository.Repository[*auth.Account]
	db   *bun.DB
}

var _ Accounts = (*accounts)(nil)

// NewAccountsRepository returns the bun-backed account repository
func NewAccountsRepository(db *bun.DB) Accounts {
	repo := repository.NewRepository[*auth.Account](db, repository.ModelHandlers[*auth.Account]{
		NewRecord: func() *auth.Account { return &auth.Account{} },
		GetID: func(a *auth.Account) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *auth.Account, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &accounts{repo: repo, db: db}
}

func (a *accounts) GetByID(ctx context.Context, id uuid.UUID) (*auth.Account, error) {
	return a.getByColumn(ctx, "id", id.String())
}

func (a *accounts) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	return a.getByColumn(ctx, "email", email)
}

func (a *accounts) GetByUsername(ctx context.Context, username string) (*auth.Account, error) {
	return a.getByColumn(ctx, "username", username)
}

func (a *accounts) getByColumn(ctx context.Context, column, value string) (*auth.Account, error) {
	record := &auth.Account{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{column: value})
		}
		return nil, err
	}

	return record, nil
}

func (a *accounts) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return a.db.NewSelect().
		Model((*auth.Account)(nil)).
		Where("?TableAlias.email = ?", email).
		Exists(ctx)
}

func (a *accounts) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return a.db.NewSelect().
		Model((*auth.Account)(nil)).
		Where("?TableAlias.username = ?", username).
		Exists(ctx)
}

func (a *accounts) Create(ctx context.Context, account *auth.Account) (*auth.Account, error) {
	prepareAccountDefaults(account)
	return a.repo.CreateTx(ctx, a.db, account)
}

func (a *accounts) List(ctx context.Context) ([]*auth.Account, error) {
	var records []*auth.Account

	err := a.db.NewSelect().
		Model(&records).
		Order("created_at ASC").
		Scan(ctx)

	return records, err
}

func (a *accounts) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := a.repo.RawTx(ctx, a.db, resetAccountPasswordSQL, passwordHash, time.Now(), id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id.String()})
	}

	return nil
}

func (a *accounts) UpdateProfile(ctx context.Context, account *auth.Account) (*auth.Account, error) {
	return a.repo.UpdateTx(ctx, a.db, account, repository.UpdateByID(account.ID.String()))
}

// UpdateApproval moves the account through the approval state machine.
// Approving stamps the approver and timestamp and clears any prior
// rejection reason; rejecting stores the reason.
func (a *accounts) UpdateApproval(ctx context.Context, id uuid.UUID, status auth.ApprovalStatus, approvedBy uuid.UUID, reason string) (*auth.Account, error) {
	if !auth.IsValidApprovalStatus(status) {
		return nil, errors.New("invalid approval status", errors.CategoryValidation).
			WithMetadata(map[string]any{"status": status})
	}

	now := time.Now()

	var approverID any
	var approvedAt any
	var rejectionReason string

	switch status {
	case auth.ApprovalApproved:
		approverID = approvedBy.String()
		approvedAt = now
	case auth.ApprovalRejected:
		rejectionReason = reason
	}

	res, err := a.repo.RawTx(ctx, a.db, updateAccountApprovalSQL,
		status, approverID, approvedAt, rejectionReason, now, id.String())
	if err != nil {
		return nil, err
	}

	if len(res) == 0 {
		return nil, repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id.String()})
	}

	return res[0], nil
}

func (a *accounts) HasOrderHistory(ctx context.Context, id uuid.UUID) (bool, error) {
	return a.db.NewSelect().
		Model((*Order)(nil)).
		Where("?TableAlias.customer_id = ?", id.String()).
		Exists(ctx)
}

// DeactivateOrDelete removes an account outright unless it has order
// history, in which case the record is kept and flipped to Rejected so
// the order trail stays attributable.
func (a *accounts) DeactivateOrDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	hasOrders, err := a.HasOrderHistory(ctx, id)
	if err != nil {
		return false, err
	}

	if hasOrders {
		_, err := a.UpdateApproval(ctx, id, auth.ApprovalRejected, uuid.Nil, DeactivationReason)
		return false, err
	}

	res, err := a.db.NewDelete().
		Model((*auth.Account)(nil)).
		Where("?TableAlias.id = ?", id.String()).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return false, repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id.String()})
	}

	return true, nil
}

func prepareAccountDefaults(record *auth.Account) {
	if record == nil {
		return
	}

	record.EnsureApprovalStatus()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
