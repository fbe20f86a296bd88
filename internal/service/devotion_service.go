// FILE: internal/service/devotion_service.go
package service

import (
	"context"
	"time"

	"soulstart-be/internal/dto"
	"soulstart-be/internal/pkg/logger"
	"soulstart-be/pkg/devotion"
)

type IDevotionService interface {
	Resolve(ctx context.Context, date time.Time, slot devotion.Slot) devotion.Record
	Message(ctx context.Context, date time.Time, slot devotion.Slot) dto.DevotionMessageResponse
	Today(ctx context.Context) dto.TodayDevotionResponse
}

type devotionService struct {
	resolver *devotion.Resolver
	renderer *devotion.Renderer
	logger   logger.ILogger
	now      func() time.Time
}

func NewDevotionService(
	resolver *devotion.Resolver,
	renderer *devotion.Renderer,
	logger logger.ILogger,
) IDevotionService {
	return &devotionService{
		resolver: resolver,
		renderer: renderer,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *devotionService) Resolve(ctx context.Context, date time.Time, slot devotion.Slot) devotion.Record {
	record := s.resolver.Resolve(date, slot)
	if record.IsPlaceholder() {
		s.logger.Debug("DevotionService", "Serving placeholder devotion", map[string]interface{}{
			"date": record.Date,
			"slot": string(record.Mode),
		})
	}
	return record
}

func (s *devotionService) Message(ctx context.Context, date time.Time, slot devotion.Slot) dto.DevotionMessageResponse {
	record := s.Resolve(ctx, date, slot)
	text := s.renderer.RenderRecord(&record, record.Mode, date)
	return dto.DevotionMessageResponse{
		Date:    record.Date,
		Slot:    string(record.Mode),
		Message: text,
	}
}

func (s *devotionService) Today(ctx context.Context) dto.TodayDevotionResponse {
	today := s.now()
	return dto.TodayDevotionResponse{
		Date:    devotion.ISODate(today),
		Morning: s.Resolve(ctx, today, devotion.SlotMorning),
		Night:   s.Resolve(ctx, today, devotion.SlotNight),
	}
}
