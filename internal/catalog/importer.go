package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"homeworth/server/internal/cache"
	"homeworth/server/internal/database"
	"homeworth/server/internal/models"
)

// ImporterConfig tunes the batch importer's retry behavior.
type ImporterConfig struct {
	MaxRetries int
	RetryDelay time.Duration
}

// BatchImporter drains reference batches from the queue and upserts them
// transactionally, invalidating cached reference values afterwards so the
// aggregator never reads stale anchors longer than one cache TTL.
type BatchImporter struct {
	db     *database.Database
	queue  *ReferenceQueue
	refs   *cache.ReferenceCache
	config ImporterConfig
	logger *logrus.Logger
}

// NewBatchImporter wires an importer; refs may be nil when no cache is in
// play.
func NewBatchImporter(db *database.Database, queue *ReferenceQueue, refs *cache.ReferenceCache, config ImporterConfig, logger *logrus.Logger) *BatchImporter {
	if logger == nil {
		logger = logrus.New()
	}
	return &BatchImporter{
		db:     db,
		queue:  queue,
		refs:   refs,
		config: config,
		logger: logger,
	}
}

// Start subscribes the importer to the queue.
func (i *BatchImporter) Start() {
	i.queue.Subscribe(i.importBatch)
}

// importBatch upserts one batch with retries, then drops the affected
// cache entries.
func (i *BatchImporter) importBatch(batch []*models.Property) error {
	var err error
	for attempt := 0; attempt <= i.config.MaxRetries; attempt++ {
		if attempt > 0 {
			i.logger.Infof("Retrying reference import, attempt %d of %d", attempt, i.config.MaxRetries)
			time.Sleep(i.config.RetryDelay)
		}

		err = i.db.DB().Transaction(func(tx *gorm.DB) error {
			return database.UpsertProperties(tx, batch)
		})
		if err == nil {
			i.invalidate(batch)
			i.logger.Infof("Imported batch of %d property references", len(batch))
			return nil
		}

		i.logger.Errorf("Reference import failed: %v", err)
	}

	return fmt.Errorf("failed to import batch after %d attempts: %w", i.config.MaxRetries, err)
}

func (i *BatchImporter) invalidate(batch []*models.Property) {
	if i.refs == nil {
		return
	}
	ids := make([]uuid.UUID, len(batch))
	for n, p := range batch {
		ids[n] = p.ID
	}
	i.refs.Invalidate(ids...)
}
