package api

import (
	"errors"
	"net/http"

	reqdto "resto-api/internal/handler/dto/request"
	resdto "resto-api/internal/handler/dto/response"
	"resto-api/internal/pkg/errs"
	"resto-api/internal/usecase/commands"
	"resto-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderCommands   commands.OrderCommands
	invoiceCommands commands.InvoiceCommands
	orderQueries    queries.OrderQueries
}

func NewOrderHandler(
	orderCommands commands.OrderCommands,
	invoiceCommands commands.InvoiceCommands,
	orderQueries queries.OrderQueries,
) *OrderHandler {
	return &OrderHandler{
		orderCommands:   orderCommands,
		invoiceCommands: invoiceCommands,
		orderQueries:    orderQueries,
	}
}

// @Summary Create order
// @Description Place an order; a dine-in order needs a free, unreserved table and occupies it
// @Tags orders
// @Accept json
// @Produce json
// @Param request body reqdto.CreateOrderRequest true "Order request"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req reqdto.CreateOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	lines := make([]commands.OrderLineRequest, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = commands.OrderLineRequest{MenuItemID: l.MenuItemID, Quantity: l.Quantity}
	}

	result, err := h.orderCommands.Create(c.Request.Context(), commands.CreateOrderRequest{
		ClientName: req.ClientName,
		Kind:       req.Kind,
		TableID:    req.TableID,
		Lines:      lines,
	})
	if err != nil {
		respondOrderErr(c, err)
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), result.OrderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOrderView(view))
}

// @Summary List orders
// @Tags orders
// @Produce json
// @Param from query string false "Placed-at lower bound (RFC3339)"
// @Param to query string false "Placed-at upper bound (RFC3339)"
// @Success 200 {array} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}

	views, err := h.orderQueries.List(c.Request.Context(), queries.OrderFilter{From: from, To: to})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderViews(views))
}

// @Summary Get order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondOrderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Update order
// @Description Patch the order header; table and status changes move occupancy atomically
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body reqdto.PatchOrderRequest true "Patch"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.PatchOrderRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.orderCommands.Update(c.Request.Context(), id, commands.PatchOrderRequest{
		ClientName: req.ClientName,
		Kind:       req.Kind,
		TableID:    req.TableID,
		Status:     req.Status,
	})
	if err != nil {
		respondOrderErr(c, err)
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Delete order
// @Description Remove an order and its lines, releasing any bound table
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.orderCommands.Delete(c.Request.Context(), id); err != nil {
		respondOrderErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Client order history
// @Tags orders
// @Produce json
// @Param name path string true "Client name"
// @Param match query string false "exact (default) or partial"
// @Success 200 {array} resdto.OrderResponse
// @Router /orders/client/{name} [get]
func (h *OrderHandler) ListClientOrders(c *gin.Context) {
	name := c.Param("name")
	partial := c.Query("match") == "partial"

	views, err := h.orderQueries.ListByClient(c.Request.Context(), name, partial)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromOrderViews(views))
}

// @Summary Generate invoice
// @Description Render the invoice PDF, mark the order paid and free its table
// @Tags orders
// @Produce json
// @Produce application/pdf
// @Param id path string true "Order ID"
// @Param download query bool false "Stream the PDF instead of returning metadata"
// @Success 200 {object} resdto.InvoiceResponse
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/invoice [get]
func (h *OrderHandler) GenerateInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.invoiceCommands.Generate(c.Request.Context(), id)
	if err != nil {
		respondOrderErr(c, err)
		return
	}

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", "attachment; filename="+result.Filename)
		c.Data(http.StatusOK, "application/pdf", result.PDF)
		return
	}
	c.JSON(http.StatusOK, resdto.FromInvoiceResult(result))
}

func respondOrderErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, errs.ErrTableNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
	case errors.Is(err, errs.ErrMenuItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
	case errors.Is(err, errs.ErrTableOccupied):
		c.JSON(http.StatusConflict, gin.H{"error": "Table is already occupied"})
	case errors.Is(err, errs.ErrTableReserved):
		c.JSON(http.StatusConflict, gin.H{"error": "Table is reserved by another client"})
	case errors.Is(err, errs.ErrTableRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dine-in order requires a table"})
	case errors.Is(err, errs.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order needs at least one line"})
	case errors.Is(err, errs.ErrInvalidKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order kind"})
	case errors.Is(err, errs.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
	case errors.Is(err, errs.ErrInvalidLine):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order line"})
	case errors.Is(err, errs.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order attributes"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
