package components

import (
	"resto-api/internal/handler"
	"resto-api/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewTableHandler,
		api.NewMenuHandler,
		api.NewReservationHandler,
		api.NewOrderHandler,
		api.NewClientHandler,
		api.NewStatsHandler,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(
	table *api.TableHandler,
	menu *api.MenuHandler,
	reservation *api.ReservationHandler,
	order *api.OrderHandler,
	client *api.ClientHandler,
	stats *api.StatsHandler,
) handler.Handlers {
	return handler.Handlers{
		Table:       table,
		Menu:        menu,
		Reservation: reservation,
		Order:       order,
		Client:      client,
		Stats:       stats,
	}
}
