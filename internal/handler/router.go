package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"resto-api/internal/handler/api"
	"resto-api/internal/handler/middleware"
	"resto-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Table       *api.TableHandler
	Menu        *api.MenuHandler
	Reservation *api.ReservationHandler
	Order       *api.OrderHandler
	Client      *api.ClientHandler
	Stats       *api.StatsHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		tables := apiGroup.Group("/tables")
		{
			addRoutes(tables, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Table.CreateTable},
				{Method: http.MethodGet, Path: "", Handler: h.Table.ListTables},
				{Method: http.MethodGet, Path: "/availability", Handler: h.Table.Availability},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Table.GetTable},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Table.UpdateTable},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Table.DeleteTable},
				{Method: http.MethodPut, Path: "/:id/occupy", Handler: h.Table.OccupyTable},
				{Method: http.MethodPut, Path: "/:id/release", Handler: h.Table.ReleaseTable},
			})
		}

		menu := apiGroup.Group("/menu")
		{
			addRoutes(menu, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Menu.CreateMenuItem},
				{Method: http.MethodGet, Path: "", Handler: h.Menu.ListMenu},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Menu.GetMenuItem},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Menu.UpdateMenuItem},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Menu.DeleteMenuItem},
			})
		}

		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.CreateReservation},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.GetReservation},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Reservation.UpdateReservation},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservation.DeleteReservation},
			})
		}

		orders := apiGroup.Group("/orders")
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Order.CreateOrder},
				{Method: http.MethodGet, Path: "", Handler: h.Order.ListOrders},
				{Method: http.MethodGet, Path: "/client/:name", Handler: h.Order.ListClientOrders},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.GetOrder},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Order.UpdateOrder},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Order.DeleteOrder},
				{Method: http.MethodGet, Path: "/:id/invoice", Handler: h.Order.GenerateInvoice},
			})
		}

		clients := apiGroup.Group("/clients")
		{
			addRoutes(clients, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Client.ListClients},
				{Method: http.MethodGet, Path: "/search", Handler: h.Client.SearchClients},
			})
		}

		stats := apiGroup.Group("/stats")
		{
			addRoutes(stats, []route{
				{Method: http.MethodGet, Path: "/revenue", Handler: h.Stats.Revenue},
				{Method: http.MethodGet, Path: "/monthly", Handler: h.Stats.Monthly},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
