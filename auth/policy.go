package auth

// Operation identifies a protected API capability. Route handlers bind
// one operation each; the policy table is the single authority map.
type Operation string

const (
	OpUsersList     Operation = "users.list"
	OpUsersGet      Operation = "users.get"
	OpUsersCreate   Operation = "users.create"
	OpUsersUpdate   Operation = "users.update"
	OpUsersDelete   Operation = "users.delete"
	OpUsersApproval Operation = "users.approval"

	OpProductsList    Operation = "products.list"
	OpProductsGet     Operation = "products.get"
	OpProductsMine    Operation = "products.mine"
	OpProductsManager Operation = "products.manager"
	OpProductsCreate  Operation = "products.create"
	OpProductsUpdate  Operation = "products.update"
	OpProductsDelete  Operation = "products.delete"

	OpInventoryList   Operation = "inventory.list"
	OpInventoryGet    Operation = "inventory.get"
	OpInventoryAdjust Operation = "inventory.adjust"

	OpWarehousesList   Operation = "warehouses.list"
	OpWarehousesGet    Operation = "warehouses.get"
	OpWarehousesCreate Operation = "warehouses.create"
	OpWarehousesUpdate Operation = "warehouses.update"
	OpWarehousesDelete Operation = "warehouses.delete"

	OpOrdersList       Operation = "orders.list"
	OpOrdersGet        Operation = "orders.get"
	OpOrdersByCustomer Operation = "orders.by_customer"
	OpOrdersCreate     Operation = "orders.create"
	OpOrdersUpdate     Operation = "orders.update"
	OpOrdersStatus     Operation = "orders.status"
	OpOrdersDelete     Operation = "orders.delete"

	OpShipmentsList   Operation = "shipments.list"
	OpShipmentsGet    Operation = "shipments.get"
	OpShipmentsTrack  Operation = "shipments.track"
	OpShipmentsUpdate Operation = "shipments.update"
	OpShipmentsDelete Operation = "shipments.delete"

	OpReturnsList    Operation = "returns.list"
	OpReturnsGet     Operation = "returns.get"
	OpReturnsCreate  Operation = "returns.create"
	OpReturnsApprove Operation = "returns.approve"
	OpReturnsDelete  Operation = "returns.delete"

	OpCarriersList   Operation = "carriers.list"
	OpCarriersGet    Operation = "carriers.get"
	OpCarriersCreate Operation = "carriers.create"
	OpCarriersUpdate Operation = "carriers.update"
	OpCarriersDelete Operation = "carriers.delete"

	OpNotificationsList Operation = "notifications.list"

	OpLogsList Operation = "logs.list"

	OpProfileGet            Operation = "profile.get"
	OpProfileUpdate         Operation = "profile.update"
	OpProfileChangePassword Operation = "profile.change_password"
)

// anyAuthenticated marks operations open to every logged-in role
var anyAuthenticated = []Role{}

// operationRoles maps each operation to its allowed role set. An entry
// with an empty set admits any authenticated identity. Operations
// absent from the table deny everyone; public endpoints never consult
// the table at all.
var operationRoles = map[Operation][]Role{
	OpUsersList:     {RoleAdmin, RoleCustomerSupport, RoleWarehouseManager},
	OpUsersGet:      {RoleAdmin, RoleCustomerSupport},
	OpUsersCreate:   {RoleAdmin},
	OpUsersUpdate:   {RoleAdmin},
	OpUsersDelete:   {RoleAdmin},
	OpUsersApproval: {RoleAdmin},

	OpProductsMine:    {RoleAdmin, RoleProductManager, RoleWarehouseManager},
	OpProductsManager: {RoleAdmin, RoleWarehouseManager},
	OpProductsCreate:  {RoleAdmin, RoleProductManager},
	OpProductsUpdate:  {RoleAdmin, RoleProductManager},
	OpProductsDelete:  {RoleAdmin, RoleProductManager},

	OpInventoryList:   {RoleAdmin, RoleWarehouseManager, RoleProductManager},
	OpInventoryGet:    {RoleAdmin, RoleWarehouseManager, RoleProductManager},
	OpInventoryAdjust: {RoleAdmin, RoleWarehouseManager},

	OpWarehousesList:   {RoleAdmin, RoleWarehouseManager},
	OpWarehousesGet:    {RoleAdmin, RoleWarehouseManager},
	OpWarehousesCreate: {RoleAdmin},
	OpWarehousesUpdate: {RoleAdmin},
	OpWarehousesDelete: {RoleAdmin},

	OpOrdersList:       {RoleAdmin, RoleCustomerSupport, RoleWarehouseManager},
	OpOrdersGet:        {RoleAdmin, RoleCustomerSupport, RoleWarehouseManager, RoleCustomer},
	OpOrdersByCustomer: {RoleAdmin, RoleCustomerSupport, RoleCustomer},
	OpOrdersCreate:     {RoleAdmin, RoleCustomer},
	OpOrdersUpdate:     {RoleAdmin, RoleWarehouseManager},
	OpOrdersStatus:     {RoleAdmin, RoleWarehouseManager, RoleCustomerSupport},
	OpOrdersDelete:     {RoleAdmin},

	OpShipmentsList:   {RoleAdmin, RoleWarehouseManager, RoleCustomerSupport},
	OpShipmentsGet:    {RoleAdmin, RoleWarehouseManager, RoleCustomerSupport, RoleCustomer},
	OpShipmentsTrack:  {RoleAdmin, RoleWarehouseManager, RoleCustomerSupport, RoleCustomer},
	OpShipmentsUpdate: {RoleAdmin, RoleWarehouseManager},
	OpShipmentsDelete: {RoleAdmin},

	OpReturnsList:    {RoleAdmin, RoleCustomerSupport, RoleCustomer},
	OpReturnsGet:     {RoleAdmin, RoleCustomerSupport, RoleCustomer},
	OpReturnsCreate:  {RoleAdmin, RoleCustomer},
	OpReturnsApprove: {RoleAdmin, RoleCustomerSupport},
	OpReturnsDelete:  {RoleAdmin},

	OpCarriersList:   {RoleAdmin, RoleWarehouseManager},
	OpCarriersGet:    {RoleAdmin, RoleWarehouseManager},
	OpCarriersCreate: {RoleAdmin},
	OpCarriersUpdate: {RoleAdmin},
	OpCarriersDelete: {RoleAdmin},

	OpNotificationsList: anyAuthenticated,

	OpLogsList: {RoleAdmin},

	OpProfileGet:            anyAuthenticated,
	OpProfileUpdate:         anyAuthenticated,
	OpProfileChangePassword: anyAuthenticated,
}

// publicOperations never require an identity
var publicOperations = map[Operation]bool{
	OpProductsList: true,
	OpProductsGet:  true,
}

// IsPublicOperation reports whether the operation skips authentication
func IsPublicOperation(op Operation) bool {
	return publicOperations[op]
}

// Authorize applies the policy table. A nil claims value means no valid
// identity was presented and yields Unauthenticated; a known identity
// whose role is outside the operation's set yields Forbidden. Unknown
// operations deny by default.
func Authorize(claims AuthClaims, op Operation) error {
	if IsPublicOperation(op) {
		return nil
	}

	if claims == nil {
		return ErrUnauthenticated
	}

	allowed, ok := operationRoles[op]
	if !ok {
		return ErrForbidden
	}

	if len(allowed) == 0 {
		return nil
	}

	for _, role := range allowed {
		if claims.HasRole(role) {
			return nil
		}
	}

	return ErrForbidden
}

// AllowedRoles returns a copy of the role set for an operation; empty
// means any authenticated identity, nil means unknown operation.
func AllowedRoles(op Operation) []Role {
	allowed, ok := operationRoles[op]
	if !ok {
		return nil
	}
	out := make([]Role, len(allowed))
	copy(out, allowed)
	return out
}
