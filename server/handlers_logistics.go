package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/logichain/backend/auth"
	"github.com/logichain/backend/repository"
)

// LogisticsHandlers is the read-side catalog surface. Writes for these
// entities are out of scope; every route here lists or fetches.
type LogisticsHandlers struct {
	repos repository.Manager
}

func NewLogisticsHandlers(repos repository.Manager) *LogisticsHandlers {
	return &LogisticsHandlers{repos: repos}
}

func respondList[T any](c *fiber.Ctx, message string, records []T, err error) error {
	if err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "query failed"))
	}
	return RespondOK(c, message, records)
}

func respondOne[T any](c *fiber.Ctx, message string, record T, err error) error {
	if err != nil {
		if errors.IsNotFound(err) {
			return RespondError(c, errors.New("record not found", errors.CategoryNotFound).
				WithCode(errors.CodeNotFound))
		}
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "query failed"))
	}
	return RespondOK(c, message, record)
}

func (h *LogisticsHandlers) ListProducts(c *fiber.Ctx) error {
	records, err := h.repos.Products().List(c.UserContext())
	return respondList(c, "Products retrieved", records, err)
}

func (h *LogisticsHandlers) GetProduct(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	record, err := h.repos.Products().GetByID(c.UserContext(), id)
	return respondOne(c, "Product retrieved", record, err)
}

// ListMyProducts returns products owned by the calling manager
func (h *LogisticsHandlers) ListMyProducts(c *fiber.Ctx) error {
	actorID := actorFromCtx(c)
	records, err := h.repos.Products().ListByManager(c.UserContext(), actorID)
	return respondList(c, "Products retrieved", records, err)
}

func (h *LogisticsHandlers) ListWarehouses(c *fiber.Ctx) error {
	records, err := h.repos.Warehouses().List(c.UserContext())
	return respondList(c, "Warehouses retrieved", records, err)
}

func (h *LogisticsHandlers) GetWarehouse(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	record, err := h.repos.Warehouses().GetByID(c.UserContext(), id)
	return respondOne(c, "Warehouse retrieved", record, err)
}

// ListInventory lists every stock record, or one warehouse's records
// when the warehouse_id query parameter is set.
func (h *LogisticsHandlers) ListInventory(c *fiber.Ctx) error {
	if q := c.Query("warehouse_id"); q != "" {
		warehouseID, err := uuid.Parse(q)
		if err != nil {
			return RespondError(c, errors.New("invalid warehouse_id", errors.CategoryBadInput).
				WithCode(errors.CodeBadRequest))
		}

		records, err := h.repos.Inventory().ListByWarehouse(c.UserContext(), warehouseID)
		return respondList(c, "Inventory retrieved", records, err)
	}

	records, err := h.repos.Inventory().List(c.UserContext())
	return respondList(c, "Inventory retrieved", records, err)
}

func (h *LogisticsHandlers) GetInventory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	record, err := h.repos.Inventory().GetByID(c.UserContext(), id)
	return respondOne(c, "Inventory record retrieved", record, err)
}

func (h *LogisticsHandlers) ListOrders(c *fiber.Ctx) error {
	records, err := h.repos.Orders().List(c.UserContext())
	return respondList(c, "Orders retrieved", records, err)
}

func (h *LogisticsHandlers) GetOrder(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	record, err := h.repos.Orders().GetWithItems(c.UserContext(), id)
	return respondOne(c, "Order retrieved", record, err)
}

// ListOrdersByCustomer returns one customer's order history. Customers
// may only ask for their own.
func (h *LogisticsHandlers) ListOrdersByCustomer(c *fiber.Ctx) error {
	customerID, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	claims := ClaimsFromCtx(c)
	if claims != nil && claims.HasRole(auth.RoleCustomer) && actorFromCtx(c) != customerID {
		return RespondError(c, auth.ErrForbidden)
	}

	records, err := h.repos.Orders().ListByCustomer(c.UserContext(), customerID)
	return respondList(c, "Orders retrieved", records, err)
}

func (h *LogisticsHandlers) ListShipments(c *fiber.Ctx) error {
	records, err := h.repos.Shipments().List(c.UserContext())
	return respondList(c, "Shipments retrieved", records, err)
}

func (h *LogisticsHandlers) GetShipment(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	record, err := h.repos.Shipments().GetByID(c.UserContext(), id)
	return respondOne(c, "Shipment retrieved", record, err)
}

func (h *LogisticsHandlers) TrackShipment(c *fiber.Ctx) error {
	trackingNumber := c.Params("tracking")
	if trackingNumber == "" {
		return RespondError(c, errors.New("tracking number required", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest))
	}

	record, err := h.repos.Shipments().GetByTracking(c.UserContext(), trackingNumber)
	return respondOne(c, "Shipment retrieved", record, err)
}

// ListNotifications returns the caller's own notifications
func (h *LogisticsHandlers) ListNotifications(c *fiber.Ctx) error {
	records, err := h.repos.Notifications().ListByAccount(c.UserContext(), actorFromCtx(c))
	return respondList(c, "Notifications retrieved", records, err)
}

func (h *LogisticsHandlers) ListReturns(c *fiber.Ctx) error {
	records, err := h.repos.Returns().List(c.UserContext())
	return respondList(c, "Returns retrieved", records, err)
}

func (h *LogisticsHandlers) GetReturn(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	record, err := h.repos.Returns().GetByID(c.UserContext(), id)
	return respondOne(c, "Return retrieved", record, err)
}

func (h *LogisticsHandlers) ListCarriers(c *fiber.Ctx) error {
	records, err := h.repos.Carriers().List(c.UserContext())
	return respondList(c, "Carriers retrieved", records, err)
}

func (h *LogisticsHandlers) GetCarrier(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return RespondError(c, err)
	}

	record, err := h.repos.Carriers().GetByID(c.UserContext(), id)
	return respondOne(c, "Carrier retrieved", record, err)
}
