package job

import (
	"context"
	"time"

	"idolagency/internal/config"
	"idolagency/internal/infrastructure/mq"
	"idolagency/internal/model"
	"idolagency/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OutboxSender drains pending outbox rows to Kafka. Rows are written in
// the same transaction as the game action they describe, so a downstream
// consumer sees an event only for state that actually committed.
type OutboxSender struct {
	db         *gorm.DB
	outboxRepo *repository.OutboxRepository
	cfg        *config.Config
	stopCh     chan struct{}
	interval   time.Duration
	batchSize  int
}

func NewOutboxSender(db *gorm.DB, cfg *config.Config) *OutboxSender {
	return &OutboxSender{
		db:         db,
		outboxRepo: repository.NewOutboxRepository(db),
		cfg:        cfg,
		stopCh:     make(chan struct{}),
		interval:   100 * time.Millisecond,
		batchSize:  100,
	}
}

func (s *OutboxSender) Start(ctx context.Context) {
	logrus.Info("outbox sender started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Info("outbox sender stopping: context cancelled")
			return
		case <-s.stopCh:
			logrus.Info("outbox sender stopped")
			return
		case <-ticker.C:
			s.processPendingMessages(ctx)
		}
	}
}

func (s *OutboxSender) Stop() {
	close(s.stopCh)
}

func (s *OutboxSender) processPendingMessages(ctx context.Context) {
	messages, err := s.outboxRepo.GetPendingMessages(ctx, s.batchSize)
	if err != nil {
		logrus.WithError(err).Error("failed to load pending outbox messages")
		return
	}

	for _, msg := range messages {
		s.sendMessage(ctx, msg)
	}
}

func (s *OutboxSender) sendMessage(ctx context.Context, msg *model.OutboxMessage) {
	err := mq.SendMessage(msg.Topic, msg.MessageKey, []byte(msg.Payload))

	if err == nil {
		if updateErr := s.outboxRepo.UpdateStatus(ctx, msg.ID, model.OutboxStatusSent); updateErr != nil {
			logrus.WithError(updateErr).WithField("id", msg.ID).Error("failed to mark outbox message sent")
		}
		return
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"id":    msg.ID,
		"topic": msg.Topic,
	}).Warn("outbox message send failed")

	if err := s.outboxRepo.IncrementRetryCount(ctx, msg.ID); err != nil {
		logrus.WithError(err).WithField("id", msg.ID).Error("failed to bump outbox retry count")
	}

	if msg.RetryCount+1 >= s.cfg.Business.MaxRetryCount {
		if err := s.outboxRepo.MarkAsFailed(ctx, msg.ID); err != nil {
			logrus.WithError(err).WithField("id", msg.ID).Error("failed to mark outbox message failed")
		} else {
			logrus.WithField("id", msg.ID).Warn("outbox message exceeded retry cap, marked failed")
		}
	}
}
