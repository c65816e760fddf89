package components

import (
	"resto-api/internal/invoice"
	"resto-api/internal/pkg/clock"
	"resto-api/internal/usecase/commands"
	"resto-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		invoice.NewRenderer,
		fx.As(new(commands.InvoiceRenderer)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewTableUseCase,
		commands.NewMenuUseCase,
		commands.NewReservationUseCase,
		commands.NewOrderUseCase,
		commands.NewInvoiceUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewTableQueries,
		queries.NewReservationQueries,
		queries.NewOrderQueries,
		queries.NewMenuQueries,
		queries.NewClientQueries,
		queries.NewStatsQueries,
	),
)
