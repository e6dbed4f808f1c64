package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"shop-backend/internal/shared"
	"shop-backend/pkg/logger"
)

// Scheduler đăng ký các cron job của location vào asynq.
type Scheduler struct {
	scheduler   *asynq.Scheduler
	warmAllCron string
}

func NewScheduler(redisOpt asynq.RedisConnOpt, warmAllCron string) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:   scheduler,
		warmAllCron: warmAllCron,
	}
}

func (s *Scheduler) RegisterJobs() error {
	if err := s.registerWarmAllProvinceTreesJob(); err != nil {
		return err
	}
	return nil
}

// ================================================
// JOB: Warm All Province Trees (QUEUE_WARM_ALL_CRON)
// ================================================
// Rebuild snapshot cho mọi country, kể cả khi cache bị flush bên ngoài
func (s *Scheduler) registerWarmAllProvinceTreesJob() error {
	if s.warmAllCron == "" {
		logger.Info("WarmAllProvinceTrees disabled (empty cron)", nil)
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeWarmAllProvinceTrees, payload)

	_, err = s.scheduler.Register(
		s.warmAllCron,
		task,
		asynq.Queue(shared.QueueLocation),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
		asynq.Unique(time.Hour),
	)
	if err != nil {
		logger.Error("Failed to register WarmAllProvinceTrees job", err)
		return fmt.Errorf("register %s (%q): %w", shared.TypeWarmAllProvinceTrees, s.warmAllCron, err)
	}

	logger.Info("✓ Registered WarmAllProvinceTrees", map[string]interface{}{"cron": s.warmAllCron})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
