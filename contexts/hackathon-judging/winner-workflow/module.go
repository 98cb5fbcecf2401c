package winnerworkflow

import (
	"log/slog"

	httpadapter "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/adapters/http"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/adapters/memory"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/application"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/application/commands"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/application/queries"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/application/workers"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/entities"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Winners commands.WinnerUseCase
	Listing queries.WinnerListUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Winners     ports.WinnerRepository
	Events      ports.EventReader
	Submissions ports.SubmissionReader
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	winners := commands.WinnerUseCase{
		Winners:      deps.Winners,
		Submissions:  deps.Submissions,
		Capabilities: application.Capabilities{Events: deps.Events},
		Outbox:       deps.Outbox,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Logger:       deps.Logger,
	}
	listing := queries.WinnerListUseCase{
		Winners: deps.Winners,
	}
	return Module{
		Handler: httpadapter.Handler{
			Winners: winners,
			Listing: listing,
			Logger:  deps.Logger,
		},
		Winners: winners,
		Listing: listing,
	}
}

func NewInMemoryModule(seed []entities.WinnerProposal, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Winners:     store,
		Events:      store,
		Submissions: store,
		Outbox:      store,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

// NewOutboxRelay builds the relay worker over the module's outbox source.
func NewOutboxRelay(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	clock ports.Clock,
	batchSize int,
	logger *slog.Logger,
) workers.OutboxRelay {
	return workers.OutboxRelay{
		Outbox:    outbox,
		Publisher: publisher,
		Clock:     clock,
		BatchSize: batchSize,
		Logger:    logger,
	}
}
