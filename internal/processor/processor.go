package processor

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"propscout/server/config"
	"propscout/server/internal/database"
	"propscout/server/internal/models"
	"propscout/server/internal/queue"
)

// BatchProcessor consumes property batches from the ingest queue, validates
// them, and upserts them into the store with transactional retries.
type BatchProcessor struct {
	db     *database.Database
	logger *logrus.Logger
	config *config.Config
	queue  *queue.IngestQueue
}

// NewBatchProcessor creates a new batch processor instance.
func NewBatchProcessor(db *database.Database, q *queue.IngestQueue, cfg *config.Config, logger *logrus.Logger) *BatchProcessor {
	return &BatchProcessor{
		db:     db,
		queue:  q,
		config: cfg,
		logger: logger,
	}
}

// Start subscribes the processor to the queue and begins dispatching with
// the configured number of concurrent workers.
func (p *BatchProcessor) Start() {
	p.queue.Subscribe(func(batch []*models.Property) error {
		return p.ProcessBatch(batch)
	})
	p.queue.Start(p.config.Ingestion.ProcessorCount)
}

// Stop closes the queue; in-flight batches finish on their own.
func (p *BatchProcessor) Stop() {
	p.queue.Close()
}

// ProcessBatch validates and stores a single batch with retry logic.
// Invalid records are dropped with an error log; the rest of the batch
// still lands.
func (p *BatchProcessor) ProcessBatch(batch []*models.Property) error {
	valid := make([]*models.Property, 0, len(batch))
	for _, property := range batch {
		if err := property.Validate(); err != nil {
			p.logger.WithError(err).WithField("property_id", property.ID).
				Error("Rejecting invalid property record")
			continue
		}
		valid = append(valid, property)
	}
	if len(valid) == 0 {
		return fmt.Errorf("batch of %d contained no valid properties", len(batch))
	}

	var err error
	for attempt := 0; attempt <= p.config.Ingestion.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, p.config.Ingestion.MaxRetries)
			time.Sleep(time.Duration(p.config.Ingestion.RetryDelay) * time.Second)
		}

		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := database.UpsertProperties(tx, valid); err != nil {
				return fmt.Errorf("failed to upsert property batch: %w", err)
			}
			return nil
		})

		if err == nil {
			p.logger.Infof("Successfully stored batch of %d properties", len(valid))
			return nil
		}

		p.logger.Errorf("Batch processing failed: %v", err)
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", p.config.Ingestion.MaxRetries, err)
}
