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

type TableHandler struct {
	tableCommands commands.TableCommands
	tableQueries  queries.TableQueries
}

func NewTableHandler(tableCommands commands.TableCommands, tableQueries queries.TableQueries) *TableHandler {
	return &TableHandler{
		tableCommands: tableCommands,
		tableQueries:  tableQueries,
	}
}

// @Summary Create table
// @Description Register a new dining table
// @Tags tables
// @Accept json
// @Produce json
// @Param request body reqdto.CreateTableRequest true "Table request"
// @Success 201 {object} resdto.TableResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tables [post]
func (h *TableHandler) CreateTable(c *gin.Context) {
	var req reqdto.CreateTableRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.tableCommands.Create(c.Request.Context(), commands.CreateTableRequest{Name: req.Name})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrTableNameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Table name already exists"})
		case errors.Is(err, errs.ErrValidationFailed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table name"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	view, err := h.tableQueries.GetByID(c.Request.Context(), result.TableID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromTableDetailView(view))
}

// @Summary List tables
// @Description List all tables with occupancy and upcoming reservation counts
// @Tags tables
// @Produce json
// @Success 200 {array} resdto.TableResponse
// @Router /tables [get]
func (h *TableHandler) ListTables(c *gin.Context) {
	views, err := h.tableQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromTableViews(views))
}

// @Summary Get table
// @Description Get a table with the reservations covering the current moment
// @Tags tables
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} resdto.TableDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tables/{id} [get]
func (h *TableHandler) GetTable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.tableQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondTableErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTableDetailView(view))
}

// @Summary Update table
// @Description Patch table name and/or occupancy
// @Tags tables
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body reqdto.UpdateTableRequest true "Patch"
// @Success 200 {object} resdto.TableDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tables/{id} [put]
func (h *TableHandler) UpdateTable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateTableRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.tableCommands.Update(c.Request.Context(), id, commands.UpdateTableRequest{
		Name:     req.Name,
		Occupied: req.Occupied,
	})
	if err != nil {
		respondTableErr(c, err)
		return
	}

	view, err := h.tableQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromTableDetailView(view))
}

// @Summary Delete table
// @Description Delete a table that no order or reservation references
// @Tags tables
// @Produce json
// @Param id path string true "Table ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tables/{id} [delete]
func (h *TableHandler) DeleteTable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.tableCommands.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, errs.ErrTableNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		case errors.Is(err, errs.ErrTableInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "Table is referenced by orders or reservations"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Occupy table
// @Description Transition a free table to occupied
// @Tags tables
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tables/{id}/occupy [put]
func (h *TableHandler) OccupyTable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.tableCommands.Occupy(c.Request.Context(), id); err != nil {
		respondTableErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "occupied"})
}

// @Summary Release table
// @Description Transition a table to free; releasing a free table is a no-op
// @Tags tables
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tables/{id}/release [put]
func (h *TableHandler) ReleaseTable(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.tableCommands.Release(c.Request.Context(), id); err != nil {
		respondTableErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "free"})
}

// @Summary Table availability
// @Description Report per-table availability for a time window
// @Tags tables
// @Produce json
// @Param from query string false "Window start (RFC3339), defaults to now"
// @Param to query string false "Window end (RFC3339), defaults to from+2h"
// @Success 200 {array} resdto.TableAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /tables/availability [get]
func (h *TableHandler) Availability(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}

	views, err := h.tableQueries.Availability(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Window end must be after start"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromTableAvailabilityViews(views))
}

func respondTableErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrTableNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
	case errors.Is(err, errs.ErrTableOccupied):
		c.JSON(http.StatusConflict, gin.H{"error": "Table is already occupied"})
	case errors.Is(err, errs.ErrTableNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Table name already exists"})
	case errors.Is(err, errs.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table attributes"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
