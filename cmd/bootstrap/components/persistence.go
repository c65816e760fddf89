package components

import (
	"resto-api/internal/infra/db"
	"resto-api/internal/infra/readstore"
	"resto-api/internal/infra/uow"
	"resto-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Table
		fx.Annotate(
			readstore.NewTableReadStore,
			fx.As(new(queries.TableViewRepo)),
		),
		// Reservation
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		// Order
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderViewRepo)),
		),
		// Menu
		fx.Annotate(
			readstore.NewMenuReadStore,
			fx.As(new(queries.MenuViewRepo)),
		),
		// Client
		fx.Annotate(
			readstore.NewClientReadStore,
			fx.As(new(queries.ClientViewRepo)),
		),
		// Stats
		fx.Annotate(
			readstore.NewStatsReadStore,
			fx.As(new(queries.StatsViewRepo)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork owns the write repositories; commands reach them
		// through the transaction it opens.
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
