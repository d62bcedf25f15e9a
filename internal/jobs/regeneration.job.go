package jobs

import (
	"context"

	"betsmith/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// DailyRegenerationJob refreshes every entitled user's recommendation
// board once per day.
type DailyRegenerationJob struct {
	regenerationService *services.RegenerationService
	log                 logger.Logger
	schedule            services.Schedule
}

func NewDailyRegenerationJob(
	regenerationService *services.RegenerationService,
	schedule services.Schedule,
) *DailyRegenerationJob {
	log := logger.New("dailyRegenerationJob")
	log.Info("Creating new daily regeneration job", "schedule", schedule)

	return &DailyRegenerationJob{
		regenerationService: regenerationService,
		log:                 log,
		schedule:            schedule,
	}
}

func (j *DailyRegenerationJob) Name() string {
	return "DailyRecommendationRegeneration"
}

func (j *DailyRegenerationJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Starting daily recommendation regeneration")

	if err := j.regenerationService.RegenerateAllUsers(ctx); err != nil {
		return log.Err("daily recommendation regeneration failed", err)
	}

	log.Info("Daily recommendation regeneration completed successfully")
	return nil
}

func (j *DailyRegenerationJob) Schedule() services.Schedule {
	return j.schedule
}
