// FILE: internal/service/dispatch_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"soulstart-be/internal/dto"
	"soulstart-be/internal/pkg/logger"
	"soulstart-be/internal/repository/memory"
	"soulstart-be/pkg/events"

	"github.com/google/uuid"
)

// ErrJobNotFound is returned when a dispatch job id never existed or has
// expired from the outbox.
var ErrJobNotFound = errors.New("dispatch job not found")

var dispatchTargets = map[string][]string{
	"both":    {"morning", "night"},
	"morning": {"morning"},
	"night":   {"night"},
	"verses":  {"verses"},
}

// NormalizeMode folds legacy mode spellings onto the accepted set. The
// old automation accepted "custom" and treated it as morning.
func NormalizeMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" || mode == "custom" {
		return "morning"
	}
	return mode
}

// DispatchTargets expands a mode into the slots it broadcasts to.
func DispatchTargets(mode string) ([]string, bool) {
	targets, ok := dispatchTargets[mode]
	return targets, ok
}

type IDispatchService interface {
	Send(ctx context.Context, mode, date string) (*dto.DispatchSendResponse, error)
	Job(ctx context.Context, jobID string) (*dto.DispatchJobResult, error)
}

type dispatchService struct {
	publisherService IPublisherService
	outbox           *memory.OutboxRepository
	logger           logger.ILogger
	now              func() time.Time
}

func NewDispatchService(
	publisherService IPublisherService,
	outbox *memory.OutboxRepository,
	logger logger.ILogger,
) IDispatchService {
	return &dispatchService{
		publisherService: publisherService,
		outbox:           outbox,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *dispatchService) Send(ctx context.Context, mode, date string) (*dto.DispatchSendResponse, error) {
	targets, ok := dispatchTargets[mode]
	if !ok {
		return nil, fmt.Errorf("unsupported dispatch mode: %s", mode)
	}

	jobID := uuid.New().String()
	evt := events.DispatchRequested{
		JobID:       jobID,
		Mode:        mode,
		Date:        date,
		Targets:     targets,
		RequestedAt: s.now(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	// The pending row is written before publishing so a fast consumer
	// always finds it.
	s.outbox.Save(&dto.DispatchJobResult{
		JobID:       jobID,
		Status:      dto.DispatchStatusPending,
		Mode:        mode,
		Date:        date,
		Messages:    []dto.DispatchMessage{},
		RequestedAt: evt.RequestedAt,
	})

	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	s.logger.Info("DispatchService", "Dispatch job queued", map[string]interface{}{
		"job_id":  jobID,
		"mode":    mode,
		"date":    date,
		"targets": targets,
	})

	return &dto.DispatchSendResponse{
		JobID:   jobID,
		Mode:    mode,
		Date:    date,
		Targets: targets,
	}, nil
}

func (s *dispatchService) Job(ctx context.Context, jobID string) (*dto.DispatchJobResult, error) {
	job, found := s.outbox.Get(jobID)
	if !found {
		return nil, ErrJobNotFound
	}
	return job, nil
}
