package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/logichain/backend/auth"
	"github.com/logichain/backend/repository"
)

// UserHandlers is the administrative account surface
type UserHandlers struct {
	accounts repository.Accounts
	logs     *repository.ActivityLogs
	logger   auth.Logger
}

func NewUserHandlers(accounts repository.Accounts, logs *repository.ActivityLogs, logger auth.Logger) *UserHandlers {
	return &UserHandlers{
		accounts: accounts,
		logs:     logs,
		logger:   logger,
	}
}

func (h *UserHandlers) List(c *fiber.Ctx) error {
	records, err := h.accounts.List(c.UserContext())
	if err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to list accounts"))
	}

	identities := make([]auth.Identity, 0, len(records))
	for _, record := range records {
		identities = append(identities, auth.IdentityOf(record))
	}

	return RespondOK(c, "Users retrieved", identities)
}

func (h *UserHandlers) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	account, err := h.accounts.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			return RespondError(c, auth.ErrAccountNotFound)
		}
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to load account"))
	}

	return RespondOK(c, "User retrieved", account)
}

// UpdateApproval approves or rejects a pending account. The acting
// administrator is stamped as the approver.
func (h *UserHandlers) UpdateApproval(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	payload := new(ApprovalPayload)
	if err := c.BodyParser(payload); err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryBadInput, "failed to parse request body"))
	}

	if err := payload.Validate(); err != nil {
		return RespondValidation(c, err)
	}

	actorID := actorFromCtx(c)

	updated, err := h.accounts.UpdateApproval(c.UserContext(), id, payload.Status, actorID, payload.RejectionReason)
	if err != nil {
		if errors.IsNotFound(err) {
			return RespondError(c, auth.ErrAccountNotFound)
		}
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to update approval"))
	}

	h.audit(c, actorID, "account.approval", updated.Email+" -> "+updated.ApprovalStatus)

	return RespondOK(c, "Approval status updated", auth.IdentityOf(updated))
}

// Delete removes an account, or deactivates it when order history
// exists so the trail stays attributable.
func (h *UserHandlers) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	deleted, err := h.accounts.DeactivateOrDelete(c.UserContext(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			return RespondError(c, auth.ErrAccountNotFound)
		}
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to delete account"))
	}

	actorID := actorFromCtx(c)

	if deleted {
		h.audit(c, actorID, "account.delete", id.String())
		return RespondOK(c, "User deleted successfully", nil)
	}

	h.audit(c, actorID, "account.deactivate", id.String())
	return RespondOK(c, "User deactivated due to existing order history", nil)
}

func (h *UserHandlers) ListLogs(c *fiber.Ctx) error {
	records, err := h.logs.List(c.UserContext())
	if err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "failed to list activity logs"))
	}

	return RespondOK(c, "Activity logs retrieved", records)
}

func (h *UserHandlers) audit(c *fiber.Ctx, actorID uuid.UUID, action, detail string) {
	entry := &repository.ActivityLog{
		Action: action,
		Detail: detail,
	}
	if actorID != uuid.Nil {
		entry.ActorID = &actorID
	}

	if err := h.logs.Append(c.UserContext(), entry); err != nil && h.logger != nil {
		h.logger.Warn("audit append failed", "action", action, "error", err)
	}
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.New("invalid id", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

func actorFromCtx(c *fiber.Ctx) uuid.UUID {
	claims := ClaimsFromCtx(c)
	if claims == nil {
		return uuid.Nil
	}

	id, err := uuid.Parse(claims.AccountID())
	if err != nil {
		return uuid.Nil
	}
	return id
}
