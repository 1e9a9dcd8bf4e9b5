package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type Scheduler struct {
	cron  *cron.Cron
	queue *redis.Client
	log   zerolog.Logger
}

func NewScheduler(queue *redis.Client, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		queue: queue,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil {
		return nil
	}

	// Dues reminders go out on the 1st of each month.
	if _, err := s.cron.AddFunc("0 0 8 1 * *", s.enqueueDuesReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 0 * * *", s.enqueueDailyDigest); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		s.cron.Stop()
		cancel()
	}()
	return cancel
}

func (s *Scheduler) enqueueDuesReminders() {
	if err := s.enqueueTask(map[string]any{
		"type":   "payment_reminder",
		"period": time.Now().UTC().Format("2006-01"),
	}); err != nil {
		s.log.Error().Err(err).Msg("enqueue dues reminders failed")
	}
}

func (s *Scheduler) enqueueDailyDigest() {
	if err := s.enqueueTask(map[string]any{
		"type": "daily_digest",
	}); err != nil {
		s.log.Error().Err(err).Msg("enqueue daily digest failed")
	}
}

func (s *Scheduler) enqueueTask(payload map[string]any) error {
	if s.queue == nil {
		return nil
	}
	_, err := s.queue.XAdd(context.Background(), &redis.XAddArgs{
		Stream: "community:notify",
		Values: payload,
	}).Result()
	return err
}
