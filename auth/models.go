package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account is the account model
type Account struct {
	bun.BaseModel   `bun:"table:accounts,alias:acc"`
	ID              uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username        string         `bun:"username,notnull,unique" json:"username,omitempty"`
	Email           string         `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash    string         `bun:"password_hash,notnull" json:"-"`
	Role            Role           `bun:"role,notnull" json:"role,omitempty"`
	Phone           string         `bun:"phone" json:"phone,omitempty"`
	ApprovalStatus  ApprovalStatus `bun:"approval_status,notnull" json:"approval_status,omitempty"`
	ApprovedBy      *uuid.UUID     `bun:"approved_by,nullzero" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `bun:"approved_at,nullzero" json:"approved_at,omitempty"`
	RejectionReason string         `bun:"rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// NeedsApproval reports whether the account is still waiting on an
// administrator decision.
func (a *Account) NeedsApproval() bool {
	return RequiresApproval(a.Role) && a.ApprovalStatus == ApprovalPending
}

// CanLogin applies the eligibility gate: Admin and Customer always may,
// approval-gated roles only once Approved.
func (a *Account) CanLogin() bool {
	if a.Role == RoleAdmin || a.Role == RoleCustomer {
		return true
	}

	if RequiresApproval(a.Role) {
		return a.ApprovalStatus == ApprovalApproved
	}

	return false
}

// EnsureApprovalStatus normalizes the status for freshly built records:
// implicitly approved roles start Approved, gated roles start Pending.
func (a *Account) EnsureApprovalStatus() {
	if a.ApprovalStatus != "" {
		return
	}
	if RequiresApproval(a.Role) {
		a.ApprovalStatus = ApprovalPending
		return
	}
	a.ApprovalStatus = ApprovalApproved
}

// Identity is the subset of Account carried in token claims and
// returned to API clients on login/registration.
type Identity struct {
	ID             uuid.UUID      `json:"id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	Role           Role           `json:"role"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
}

// IdentityOf builds an Identity from a persisted account
func IdentityOf(a *Account) Identity {
	return Identity{
		ID:             a.ID,
		Username:       a.Username,
		Email:          a.Email,
		Role:           a.Role,
		ApprovalStatus: a.ApprovalStatus,
	}
}
