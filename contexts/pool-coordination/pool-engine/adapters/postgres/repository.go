package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fundpool/contexts/pool-coordination/pool-engine/domain/entities"
	domainerrors "fundpool/contexts/pool-coordination/pool-engine/domain/errors"
	"fundpool/contexts/pool-coordination/pool-engine/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"

	// Exactly one pool instance is modeled; its row key is fixed.
	poolRowID = "pool"
)

// Repository persists the pool aggregate. Save writes the snapshot and its
// outbox rows in one transaction so a command lands atomically with its
// events.
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

// Migrate creates the pool tables when they do not exist yet.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&poolModel{}, &contributionModel{}, &proposalModel{}, &outboxModel{})
}

func (r *Repository) Load(ctx context.Context) (entities.Pool, error) {
	var row poolModel
	err := r.db.WithContext(ctx).
		Where("id = ?", poolRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.NewPool(), nil
		}
		return entities.Pool{}, r.logError("pool_repo_load_failed", err)
	}

	var contributionRows []contributionModel
	if err := r.db.WithContext(ctx).Find(&contributionRows).Error; err != nil {
		return entities.Pool{}, r.logError("pool_repo_load_contributions_failed", err)
	}
	var proposalRows []proposalModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&proposalRows).Error; err != nil {
		return entities.Pool{}, r.logError("pool_repo_load_proposals_failed", err)
	}

	return assemblePool(row, contributionRows, proposalRows), nil
}

func (r *Repository) Save(ctx context.Context, pool entities.Pool, outbox []ports.OutboxMessage) error {
	row := poolModelFromEntity(pool)
	contributionRows := contributionModelsFromEntity(pool)
	proposalRows := proposalModelsFromEntity(pool)
	outboxRows := outboxModelsFromMessages(outbox)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&row).Error; err != nil {
			return err
		}
		for i := range contributionRows {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "participant_id"}},
				UpdateAll: true,
			}).Create(&contributionRows[i]).Error; err != nil {
				return err
			}
		}
		for i := range proposalRows {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&proposalRows[i]).Error; err != nil {
				return err
			}
		}
		for i := range outboxRows {
			if err := tx.Create(&outboxRows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("pool_repo_save_failed", err)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("pool_repo_list_outbox_failed", err)
	}
	messages := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, ports.OutboxMessage{
			OutboxID:     row.ID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return messages, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("id = ?", outboxID).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).
		Error
	if err != nil {
		return r.logError("pool_repo_mark_outbox_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	attrs := append([]any{
		"event", event,
		"module", "pool-coordination/pool-engine",
		"layer", "adapter",
	}, args...)
	attrs = append(attrs, "error", err.Error())
	r.logger.Error("pool repository operation failed", attrs...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
