package poolengine

import (
	"log/slog"

	httpadapter "fundpool/contexts/pool-coordination/pool-engine/adapters/http"
	"fundpool/contexts/pool-coordination/pool-engine/adapters/memory"
	"fundpool/contexts/pool-coordination/pool-engine/application/commands"
	"fundpool/contexts/pool-coordination/pool-engine/application/queries"
	"fundpool/contexts/pool-coordination/pool-engine/ports"
)

type Module struct {
	Handler  httpadapter.Handler
	Commands commands.PoolUseCase
	Queries  queries.PoolQueries
	Store    *memory.Store
}

type Dependencies struct {
	Pool      ports.PoolRepository
	Transfers ports.TransferEmitter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Source    string
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	poolUseCase := commands.PoolUseCase{
		Pool:      deps.Pool,
		Transfers: deps.Transfers,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Source:    deps.Source,
		Logger:    deps.Logger,
	}
	poolQueries := queries.PoolQueries{
		Pool:  deps.Pool,
		Clock: deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Commands: poolUseCase,
			Queries:  poolQueries,
			Logger:   deps.Logger,
		},
		Commands: poolUseCase,
		Queries:  poolQueries,
	}
}

// NewInMemoryModule wires the module against the in-memory store and a
// recording transfer emitter, for tests and local runs.
func NewInMemoryModule(logger *slog.Logger) (Module, *memory.RecordingEmitter) {
	store := memory.NewStore()
	emitter := &memory.RecordingEmitter{}
	module := NewModule(Dependencies{
		Pool:      store,
		Transfers: emitter,
		Clock:     store,
		IDGen:     store,
		Source:    "fundpool",
		Logger:    logger,
	})
	module.Store = store
	return module, emitter
}
