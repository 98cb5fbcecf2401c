package postgresadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/domain/entities"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/criteria-registry/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) ListCriteriaByEvent(ctx context.Context, eventID string) ([]entities.Criterion, error) {
	var rows []criterionModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Order("display_order ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("criteria_repo_list_failed", err,
			"event_id", strings.TrimSpace(eventID),
		)
	}
	return toCriterionEntities(rows), nil
}

// SeedCriteria inserts the default set with ON CONFLICT DO NOTHING on the
// (event_id, name) unique index, then re-reads. Losing a concurrent seed
// race is not an error: the winner's rows are returned.
func (r *Repository) SeedCriteria(ctx context.Context, criteria []entities.Criterion) ([]entities.Criterion, error) {
	if len(criteria) == 0 {
		return nil, nil
	}
	rows := make([]criterionModel, 0, len(criteria))
	for _, item := range criteria {
		rows = append(rows, criterionModelFromEntity(item))
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(&rows)
	if create.Error != nil {
		return nil, r.logError("criteria_repo_seed_failed", create.Error,
			"event_id", strings.TrimSpace(criteria[0].EventID),
		)
	}
	return r.ListCriteriaByEvent(ctx, criteria[0].EventID)
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "hackathon-judging/criteria-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("criteria repository operation failed", fields...)
	return err
}

// SystemClock satisfies ports.Clock with wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator satisfies ports.IDGenerator with random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type criterionModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	EventID      string    `gorm:"column:event_id"`
	Name         string    `gorm:"column:name"`
	Weight       int       `gorm:"column:weight"`
	DisplayOrder int       `gorm:"column:display_order"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (criterionModel) TableName() string {
	return "judging_criteria"
}

func criterionModelFromEntity(item entities.Criterion) criterionModel {
	row := criterionModel{
		ID:           strings.TrimSpace(item.CriterionID),
		EventID:      strings.TrimSpace(item.EventID),
		Name:         strings.TrimSpace(item.Name),
		Weight:       item.Weight,
		DisplayOrder: item.DisplayOrder,
		CreatedAt:    item.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m criterionModel) toEntity() entities.Criterion {
	return entities.Criterion{
		CriterionID:  m.ID,
		EventID:      m.EventID,
		Name:         m.Name,
		Weight:       m.Weight,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func toCriterionEntities(rows []criterionModel) []entities.Criterion {
	items := make([]entities.Criterion, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

var _ ports.CriteriaRepository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
