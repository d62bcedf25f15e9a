package services

import (
	"betsmith/config"
	"betsmith/internal/database"
	"betsmith/internal/events"
	"betsmith/internal/repositories"
)

type Service struct {
	Scheduler    *SchedulerService
	SportsData   *SportsDataService
	Normalizer   *GameNormalizerService
	Synthesizer  *SynthesizerService
	Regeneration *RegenerationService
	Quota        *QuotaService
	Picks        *PicksService
	AIClient     *AIClientService
	Prompt       *PromptService
}

func New(
	db database.DB,
	config config.Config,
	eventBus *events.EventBus,
	repos repositories.Repository,
) (Service, error) {
	schedulerService := NewSchedulerService()
	sportsDataService := NewSportsDataService(config)
	normalizerService := NewGameNormalizerService()
	synthesizerService := NewSynthesizerService()

	regenerationService := NewRegenerationService(
		repos,
		db,
		sportsDataService,
		normalizerService,
		synthesizerService,
		eventBus,
	)

	quotaService, err := NewQuotaService(repos, config)
	if err != nil {
		return Service{}, err
	}

	picksService := NewPicksService(repos, db, eventBus)
	aiClientService := NewAIClientService(config)
	promptService := NewPromptService(quotaService, aiClientService, repos, db, config)

	return Service{
		Scheduler:    schedulerService,
		SportsData:   sportsDataService,
		Normalizer:   normalizerService,
		Synthesizer:  synthesizerService,
		Regeneration: regenerationService,
		Quota:        quotaService,
		Picks:        picksService,
		AIClient:     aiClientService,
		Prompt:       promptService,
	}, nil
}
