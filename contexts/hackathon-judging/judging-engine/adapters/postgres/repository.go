package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/entities"
	domainerrors "github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/domain/errors"
	"github.com/maximally0/maximally-main-website-sub004/contexts/hackathon-judging/judging-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
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

// SaveRating upserts on the (submission_id, judge_id, criterion_id) unique
// index, so a concurrent double-submit by the same judge collapses to
// last-write-wins instead of a duplicate row.
func (r *Repository) SaveRating(ctx context.Context, rating entities.Rating) error {
	row := ratingModelFromEntity(rating)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "submission_id"},
			{Name: "judge_id"},
			{Name: "criterion_id"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"score":      row.Score,
			"notes":      row.Notes,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrInvalidRatingInput
		}
		return r.logError("judging_repo_save_rating_failed", create.Error,
			"rating_id", strings.TrimSpace(rating.RatingID),
			"submission_id", strings.TrimSpace(rating.SubmissionID),
			"judge_id", strings.TrimSpace(rating.JudgeID),
		)
	}
	return nil
}

func (r *Repository) GetRatingByIdentity(
	ctx context.Context,
	submissionID string,
	judgeID string,
	criterionID string,
) (entities.Rating, bool, error) {
	var row ratingModel
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Where("judge_id = ?", strings.TrimSpace(judgeID)).
		Where("criterion_id = ?", strings.TrimSpace(criterionID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Rating{}, false, nil
		}
		return entities.Rating{}, false, r.logError("judging_repo_get_rating_by_identity_failed", err,
			"submission_id", strings.TrimSpace(submissionID),
			"judge_id", strings.TrimSpace(judgeID),
			"criterion_id", strings.TrimSpace(criterionID),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListRatingsBySubmission(ctx context.Context, submissionID string) ([]entities.Rating, error) {
	var rows []ratingModel
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", strings.TrimSpace(submissionID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("judging_repo_list_ratings_by_submission_failed", err,
			"submission_id", strings.TrimSpace(submissionID),
		)
	}
	return toRatingEntities(rows), nil
}

func (r *Repository) ListRatingsByEvent(ctx context.Context, eventID string) ([]entities.Rating, error) {
	var rows []ratingModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("judging_repo_list_ratings_by_event_failed", err,
			"event_id", strings.TrimSpace(eventID),
		)
	}
	return toRatingEntities(rows), nil
}

func (r *Repository) CountDistinctRatedSubmissions(ctx context.Context, judgeID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ratingModel{}).
		Where("judge_id = ?", strings.TrimSpace(judgeID)).
		Distinct("submission_id").
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("judging_repo_count_distinct_rated_failed", err,
			"judge_id", strings.TrimSpace(judgeID),
		)
	}
	return int(count), nil
}

func (r *Repository) CountRatingsByJudge(ctx context.Context, judgeID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ratingModel{}).
		Where("judge_id = ?", strings.TrimSpace(judgeID)).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("judging_repo_count_ratings_by_judge_failed", err,
			"judge_id", strings.TrimSpace(judgeID),
		)
	}
	return int(count), nil
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
		return ports.SubmissionProjection{}, r.logError("judging_repo_get_submission_failed", err,
			"submission_id", strings.TrimSpace(submissionID),
		)
	}
	return row.toProjection(), nil
}

func (r *Repository) ListSubmittedByEvent(ctx context.Context, eventID string) ([]ports.SubmissionProjection, error) {
	var rows []submissionProjectionModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Where("status = ?", ports.SubmissionStatusSubmitted).
		Order("submission_id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("judging_repo_list_submitted_failed", err,
			"event_id", strings.TrimSpace(eventID),
		)
	}
	items := make([]ports.SubmissionProjection, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toProjection())
	}
	return items, nil
}

func (r *Repository) IsActiveAssignment(ctx context.Context, judgeID string, eventID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&assignmentModel{}).
		Where("judge_id = ?", strings.TrimSpace(judgeID)).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		Where("status = ?", "active").
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("judging_repo_assignment_lookup_failed", err,
			"judge_id", strings.TrimSpace(judgeID),
			"event_id", strings.TrimSpace(eventID),
		)
	}
	return count > 0, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "hackathon-judging/judging-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("judging repository operation failed", fields...)
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

type ratingModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	SubmissionID string    `gorm:"column:submission_id"`
	EventID      string    `gorm:"column:event_id"`
	JudgeID      string    `gorm:"column:judge_id"`
	CriterionID  string    `gorm:"column:criterion_id"`
	Score        float64   `gorm:"column:score"`
	Notes        string    `gorm:"column:notes"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (ratingModel) TableName() string {
	return "judging_ratings"
}

func ratingModelFromEntity(rating entities.Rating) ratingModel {
	row := ratingModel{
		ID:           strings.TrimSpace(rating.RatingID),
		SubmissionID: strings.TrimSpace(rating.SubmissionID),
		EventID:      strings.TrimSpace(rating.EventID),
		JudgeID:      strings.TrimSpace(rating.JudgeID),
		CriterionID:  strings.TrimSpace(rating.CriterionID),
		Score:        rating.Score,
		Notes:        strings.TrimSpace(rating.Notes),
		CreatedAt:    rating.CreatedAt.UTC(),
		UpdatedAt:    rating.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m ratingModel) toEntity() entities.Rating {
	return entities.Rating{
		RatingID:     m.ID,
		SubmissionID: m.SubmissionID,
		EventID:      m.EventID,
		JudgeID:      m.JudgeID,
		CriterionID:  m.CriterionID,
		Score:        m.Score,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type submissionProjectionModel struct {
	SubmissionID string    `gorm:"column:submission_id;primaryKey"`
	EventID      string    `gorm:"column:event_id"`
	TeamRef      string    `gorm:"column:team_ref"`
	Status       string    `gorm:"column:status"`
	SubmittedAt  time.Time `gorm:"column:submitted_at"`
}

func (submissionProjectionModel) TableName() string {
	return "submissions"
}

func (m submissionProjectionModel) toProjection() ports.SubmissionProjection {
	return ports.SubmissionProjection{
		SubmissionID: m.SubmissionID,
		EventID:      m.EventID,
		TeamRef:      m.TeamRef,
		Status:       m.Status,
		SubmittedAt:  m.SubmittedAt.UTC(),
	}
}

type assignmentModel struct {
	JudgeID string `gorm:"column:judge_id;primaryKey"`
	EventID string `gorm:"column:event_id;primaryKey"`
	Status  string `gorm:"column:status"`
}

func (assignmentModel) TableName() string {
	return "judge_assignments"
}

func toRatingEntities(rows []ratingModel) []entities.Rating {
	items := make([]entities.Rating, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.RatingRepository = (*Repository)(nil)
var _ ports.SubmissionReader = (*Repository)(nil)
var _ ports.AssignmentReader = (*Repository)(nil)
