package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noobie-hq/noobie-api/internal/dto"
	"github.com/noobie-hq/noobie-api/pkg/ai"
)

// TrainingTaskService turns guideline text into progressive practice tasks.
type TrainingTaskService interface {
	Generate(ctx context.Context, payload dto.GenerateTasksRequest) (dto.GenerateTasksResponse, error)
}

type trainingTaskService struct {
	generator ai.TaskGenerator
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTrainingTaskService constructs the training task service.
func NewTrainingTaskService(generator ai.TaskGenerator, validate *validator.Validate, logger zerolog.Logger) TrainingTaskService {
	return &trainingTaskService{
		generator: generator,
		validator: validate,
		logger:    logger.With().Str("component", "training_task_service").Logger(),
	}
}

func (s *trainingTaskService) Generate(ctx context.Context, payload dto.GenerateTasksRequest) (dto.GenerateTasksResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GenerateTasksResponse{}, err
	}

	if s.generator == nil {
		return dto.GenerateTasksResponse{}, ErrClassifierUnavailable
	}

	tasks, err := s.generator.GenerateTasks(ctx, payload.Rules)
	if err != nil {
		return dto.GenerateTasksResponse{}, err
	}

	return dto.GenerateTasksResponse{Tasks: tasks}, nil
}
