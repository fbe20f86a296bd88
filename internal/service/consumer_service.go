// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"
	"unicode/utf8"

	"soulstart-be/internal/dto"
	"soulstart-be/internal/repository/memory"
	"soulstart-be/pkg/devotion"
	"soulstart-be/pkg/events"
	pktNats "soulstart-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	resolver       *devotion.Resolver
	renderer       *devotion.Renderer
	contentService IContentService
	outbox         *memory.OutboxRepository
	deliveryPub    *pktNats.Publisher // nil when no delivery bridge is configured
	now            func() time.Time
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	resolver *devotion.Resolver,
	renderer *devotion.Renderer,
	contentService IContentService,
	outbox *memory.OutboxRepository,
	deliveryPub *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		resolver:       resolver,
		renderer:       renderer,
		contentService: contentService,
		outbox:         outbox,
		deliveryPub:    deliveryPub,
		now:            time.Now,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var evt events.DispatchRequested
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		log.Printf("[ERROR] Failed to unmarshal dispatch event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing dispatch job %s (mode=%s date=%s)", evt.JobID, evt.Mode, evt.Date)

	date, ok := devotion.ParseDate(evt.Date)
	if !ok {
		log.Printf("[ERROR] Dispatch job %s carries unparseable date %q", evt.JobID, evt.Date)
		msg.Ack() // The date was validated upstream; a bad one here is poison.
		return
	}

	job, found := cs.outbox.Get(evt.JobID)
	if !found {
		// The pending row expired or the event predates this process.
		job = &dto.DispatchJobResult{
			JobID:       evt.JobID,
			Status:      dto.DispatchStatusPending,
			Mode:        evt.Mode,
			Date:        evt.Date,
			RequestedAt: evt.RequestedAt,
		}
	}

	messages := make([]dto.DispatchMessage, 0, len(evt.Targets))
	for _, target := range evt.Targets {
		var text string
		if target == "verses" {
			text = cs.contentService.VersesMessage(ctx)
		} else {
			slot := devotion.NormalizeSlot(target)
			record := cs.resolver.Resolve(date, slot)
			text = cs.renderer.RenderRecord(&record, slot, date)
		}
		messages = append(messages, dto.DispatchMessage{
			Target: target,
			Text:   text,
			Chars:  utf8.RuneCountInString(text),
		})
	}

	completedAt := cs.now()
	job.Status = dto.DispatchStatusCompleted
	job.Messages = messages
	job.CompletedAt = &completedAt
	cs.outbox.Save(job)

	cs.announceCompletion(ctx, job)

	log.Printf("[SUCCESS] Dispatch job %s completed with %d message(s)", evt.JobID, len(messages))
	msg.Ack()
}

// announceCompletion hands the rendered messages to the sender automations.
// Delivery is best effort; the job result stays queryable either way.
func (cs *consumerService) announceCompletion(ctx context.Context, job *dto.DispatchJobResult) {
	if cs.deliveryPub == nil {
		return
	}

	out := make([]events.DispatchedMessage, 0, len(job.Messages))
	for _, m := range job.Messages {
		out = append(out, events.DispatchedMessage{
			Target: m.Target,
			Text:   m.Text,
			Chars:  m.Chars,
		})
	}
	evt := events.DispatchCompleted{
		JobID:       job.JobID,
		Mode:        job.Mode,
		Date:        job.Date,
		Messages:    out,
		CompletedAt: *job.CompletedAt,
	}
	if err := cs.deliveryPub.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish DISPATCH_COMPLETED event: %v", err)
	}
}
