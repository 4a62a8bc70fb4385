package auth

// Role is an account's role
type Role = string

const (
	// RoleAdmin is the administrator role, implicitly approved
	RoleAdmin Role = "ADMIN"
	// RoleCustomer is the customer role, implicitly approved
	RoleCustomer Role = "CUSTOMER"
	// RoleWarehouseManager requires administrator approval before login
	RoleWarehouseManager Role = "WAREHOUSE_MANAGER"
	// RoleCustomerSupport requires administrator approval before login
	RoleCustomerSupport Role = "CUSTOMER_SUPPORT"
	// RoleProductManager requires administrator approval before login
	RoleProductManager Role = "PRODUCT_MANAGER"
)

// ApprovalStatus is the account's approval state
type ApprovalStatus = string

const (
	// ApprovalPending is the initial state for approval-gated roles
	ApprovalPending ApprovalStatus = "PENDING"
	// ApprovalApproved allows the account to authenticate
	ApprovalApproved ApprovalStatus = "APPROVED"
	// ApprovalRejected blocks authentication; may carry a reason
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleWarehouseManager, RoleCustomerSupport, RoleProductManager:
		return true
	default:
		return false
	}
}

// RequiresApproval reports whether the role needs an administrator to
// approve the account before it may authenticate.
func RequiresApproval(r Role) bool {
	switch r {
	case RoleWarehouseManager, RoleCustomerSupport, RoleProductManager:
		return true
	default:
		return false
	}
}

// GetAllRoles returns all predefined roles
func GetAllRoles() []Role {
	return []Role{
		RoleAdmin,
		RoleCustomer,
		RoleWarehouseManager,
		RoleCustomerSupport,
		RoleProductManager,
	}
}

// ParseRole safely parses a string into a Role
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, IsValidRole(role)
}

// IsValidApprovalStatus checks the status against the fixed enumeration
func IsValidApprovalStatus(s ApprovalStatus) bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	default:
		return false
	}
}
