package api

import (
	"net/http"

	resdto "resto-api/internal/handler/dto/response"
	"resto-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientQueries queries.ClientQueries
}

func NewClientHandler(clientQueries queries.ClientQueries) *ClientHandler {
	return &ClientHandler{clientQueries: clientQueries}
}

// @Summary List clients
// @Description Per-client aggregates from order history
// @Tags clients
// @Produce json
// @Param from query string false "Placed-at lower bound (RFC3339)"
// @Param to query string false "Placed-at upper bound (RFC3339)"
// @Success 200 {array} resdto.ClientResponse
// @Failure 400 {object} map[string]string
// @Router /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}

	views, err := h.clientQueries.List(c.Request.Context(), queries.ClientFilter{From: from, To: to})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromClientViews(views))
}

// @Summary Search clients
// @Description Name search with reservation counts added
// @Tags clients
// @Produce json
// @Param term query string true "Name substring"
// @Success 200 {array} resdto.ClientSearchResponse
// @Router /clients/search [get]
func (h *ClientHandler) SearchClients(c *gin.Context) {
	term := c.Query("term")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "term is required"})
		return
	}

	views, err := h.clientQueries.Search(c.Request.Context(), term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromClientSearchViews(views))
}
