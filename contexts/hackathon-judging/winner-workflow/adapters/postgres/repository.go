package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/winner-workflow/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
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

// SaveWinner upserts on the winner id. The (event_id, prize_position)
// unique index backs the application-level position checks, so a racing
// duplicate surfaces as a conflict instead of a second row.
func (r *Repository) SaveWinner(ctx context.Context, winner entities.WinnerProposal) error {
	row := winnerModelFromEntity(winner)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"submission_id":  row.SubmissionID,
			"prize_position": row.PrizePosition,
			"prize_amount":   row.PrizeAmount,
			"status":         row.Status,
			"updated_at":     row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrPrizePositionTaken
		}
		return r.logError("winner_repo_save_failed", create.Error,
			"winner_id", strings.TrimSpace(winner.WinnerID),
			"event_id", strings.TrimSpace(winner.EventID),
		)
	}
	return nil
}

func (r *Repository) GetWinner(ctx context.Context, winnerID string) (entities.WinnerProposal, error) {
	var row winnerModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(winnerID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.WinnerProposal{}, domainerrors.ErrWinnerNotFound
		}
		return entities.WinnerProposal{}, r.logError("winner_repo_get_failed", err,
			"winner_id", strings.TrimSpace(winnerID),
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ListWinnersByEvent(ctx context.Context, eventID string) ([]entities.WinnerProposal, error) {
	var rows []winnerModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Order("prize_position ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("winner_repo_list_failed", err,
			"event_id", strings.TrimSpace(eventID),
		)
	}
	items := make([]entities.WinnerProposal, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetEvent(ctx context.Context, eventID string) (ports.EventProjection, error) {
	var row eventProjectionModel
	err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.EventProjection{}, domainerrors.ErrEventNotFound
		}
		return ports.EventProjection{}, r.logError("winner_repo_get_event_failed", err,
			"event_id", strings.TrimSpace(eventID),
		)
	}
	return row.toProjection(), nil
}

func (r *Repository) GetSubmission(ctx context.Context, submissionID string) (ports.SubmissionProjection, error) {
	var row submissionProjectionModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.SubmissionProjection{}, domainerrors.ErrSubmissionNotFound
		}
		return ports.SubmissionProjection{}, r.logError("winner_repo_get_submission_failed", err,
			"submission_id", strings.TrimSpace(submissionID),
		)
	}
	return ports.SubmissionProjection{
		SubmissionID: row.SubmissionID,
		EventID:      row.EventID,
		TeamRef:      row.TeamRef,
		Status:       row.Status,
	}, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return r.logError("winner_repo_append_outbox_marshal_failed", err,
			"event_id", strings.TrimSpace(envelope.EventID),
			"event_type", strings.TrimSpace(envelope.EventType),
		)
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("winner_repo_append_outbox_failed", create.Error,
			"outbox_id", row.OutboxID,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("winner_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("winner_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOutboxRowMissing
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "hackathon-judging/winner-workflow",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("winner repository operation failed", fields...)
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

type winnerModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	EventID       string    `gorm:"column:event_id"`
	SubmissionID  string    `gorm:"column:submission_id"`
	PrizePosition int       `gorm:"column:prize_position"`
	PrizeAmount   *float64  `gorm:"column:prize_amount"`
	Status        string    `gorm:"column:status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (winnerModel) TableName() string {
	return "event_winners"
}

func winnerModelFromEntity(winner entities.WinnerProposal) winnerModel {
	return winnerModel{
		ID:            strings.TrimSpace(winner.WinnerID),
		EventID:       strings.TrimSpace(winner.EventID),
		SubmissionID:  strings.TrimSpace(winner.SubmissionID),
		PrizePosition: winner.PrizePosition,
		PrizeAmount:   winner.PrizeAmount,
		Status:        strings.TrimSpace(winner.Status),
		CreatedAt:     winner.CreatedAt.UTC(),
		UpdatedAt:     winner.UpdatedAt.UTC(),
	}
}

func (m winnerModel) toEntity() entities.WinnerProposal {
	return entities.WinnerProposal{
		WinnerID:      m.ID,
		EventID:       m.EventID,
		SubmissionID:  m.SubmissionID,
		PrizePosition: m.PrizePosition,
		PrizeAmount:   m.PrizeAmount,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type eventProjectionModel struct {
	EventID       string    `gorm:"column:event_id;primaryKey"`
	OrganizerID   string    `gorm:"column:organizer_id"`
	JudgingWindow string    `gorm:"column:judging_window"`
	JudgingEndsAt time.Time `gorm:"column:judging_ends_at"`
}

func (eventProjectionModel) TableName() string {
	return "events"
}

func (m eventProjectionModel) toProjection() ports.EventProjection {
	return ports.EventProjection{
		EventID:       m.EventID,
		OrganizerID:   m.OrganizerID,
		JudgingWindow: m.JudgingWindow,
		JudgingEndsAt: m.JudgingEndsAt.UTC(),
	}
}

type submissionProjectionModel struct {
	SubmissionID string `gorm:"column:submission_id;primaryKey"`
	EventID      string `gorm:"column:event_id"`
	TeamRef      string `gorm:"column:team_ref"`
	Status       string `gorm:"column:status"`
}

func (submissionProjectionModel) TableName() string {
	return "submissions"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "winner_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.WinnerRepository = (*Repository)(nil)
var _ ports.EventReader = (*Repository)(nil)
var _ ports.SubmissionReader = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
