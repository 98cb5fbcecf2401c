package judgingengine

import (
	"log/slog"

	httpadapter "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/adapters/http"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/adapters/memory"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/application"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/application/commands"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/application/queries"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/entities"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Ratings commands.RatingUseCase
	Ranking queries.RankingUseCase
	Audit   queries.AuditUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Ratings     ports.RatingRepository
	Submissions ports.SubmissionReader
	Assignments ports.AssignmentReader
	Criteria    ports.CriteriaProvider
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	capabilities := application.Capabilities{
		Assignments: deps.Assignments,
	}
	ratings := commands.RatingUseCase{
		Ratings:      deps.Ratings,
		Submissions:  deps.Submissions,
		Criteria:     deps.Criteria,
		Capabilities: capabilities,
		Clock:        deps.Clock,
		IDGen:        deps.IDGen,
		Logger:       deps.Logger,
	}
	ranking := queries.RankingUseCase{
		Ratings:     deps.Ratings,
		Submissions: deps.Submissions,
		Criteria:    deps.Criteria,
	}
	audit := queries.AuditUseCase{
		Ratings:     deps.Ratings,
		Submissions: deps.Submissions,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ratings: ratings,
			Ranking: ranking,
			Audit:   audit,
			Logger:  deps.Logger,
		},
		Ratings: ratings,
		Ranking: ranking,
		Audit:   audit,
	}
}

func NewInMemoryModule(seed []entities.Rating, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Ratings:     store,
		Submissions: store,
		Assignments: store,
		Criteria:    store,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
