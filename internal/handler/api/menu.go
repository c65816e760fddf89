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

type MenuHandler struct {
	menuCommands commands.MenuCommands
	menuQueries  queries.MenuQueries
}

func NewMenuHandler(menuCommands commands.MenuCommands, menuQueries queries.MenuQueries) *MenuHandler {
	return &MenuHandler{
		menuCommands: menuCommands,
		menuQueries:  menuQueries,
	}
}

// @Summary Create menu item
// @Tags menu
// @Accept json
// @Produce json
// @Param request body reqdto.CreateMenuItemRequest true "Menu item"
// @Success 201 {object} resdto.MenuItemResponse
// @Failure 400 {object} map[string]string
// @Router /menu [post]
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req reqdto.CreateMenuItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.menuCommands.Create(c.Request.Context(), commands.CreateMenuItemRequest{
		Name:           req.Name,
		UnitPriceCents: req.UnitPriceCents,
	})
	if err != nil {
		respondMenuErr(c, err)
		return
	}

	view, err := h.menuQueries.GetByID(c.Request.Context(), result.MenuItemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromMenuItemView(view))
}

// @Summary List menu
// @Description List items; with search, adds units-sold counts
// @Tags menu
// @Produce json
// @Param search query string false "Name substring filter"
// @Success 200 {array} resdto.MenuItemResponse
// @Router /menu [get]
func (h *MenuHandler) ListMenu(c *gin.Context) {
	if term := c.Query("search"); term != "" {
		views, err := h.menuQueries.Search(c.Request.Context(), term)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, resdto.FromMenuSearchViews(views))
		return
	}

	views, err := h.menuQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromMenuItemViews(views))
}

// @Summary Get menu item
// @Tags menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 200 {object} resdto.MenuItemResponse
// @Failure 404 {object} map[string]string
// @Router /menu/{id} [get]
func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.menuQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondMenuErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMenuItemView(view))
}

// @Summary Update menu item
// @Description Patch name and/or price; past order lines keep their snapshots
// @Tags menu
// @Accept json
// @Produce json
// @Param id path string true "Menu item ID"
// @Param request body reqdto.UpdateMenuItemRequest true "Patch"
// @Success 200 {object} resdto.MenuItemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /menu/{id} [put]
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateMenuItemRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.menuCommands.Update(c.Request.Context(), id, commands.UpdateMenuItemRequest{
		Name:           req.Name,
		UnitPriceCents: req.UnitPriceCents,
	})
	if err != nil {
		respondMenuErr(c, err)
		return
	}

	view, err := h.menuQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromMenuItemView(view))
}

// @Summary Delete menu item
// @Description Refused while any order line references the item
// @Tags menu
// @Produce json
// @Param id path string true "Menu item ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /menu/{id} [delete]
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.menuCommands.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, errs.ErrMenuItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		case errors.Is(err, errs.ErrMenuItemInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "Menu item is referenced by order lines"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func respondMenuErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrMenuItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
	case errors.Is(err, errs.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid menu item attributes"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
