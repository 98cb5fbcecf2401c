package criteriaregistry

import (
	"log/slog"

	httpadapter "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/adapters/http"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/adapters/memory"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/application"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/domain/entities"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Criteria ports.CriteriaRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Criteria: deps.Criteria,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Criteria: service,
			Logger:   deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(seed []entities.Criterion, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Criteria: store,
		Clock:    store,
		IDGen:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
