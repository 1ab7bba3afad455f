package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fare-tracker-service/internal/domain/entity"
	"fare-tracker-service/internal/domain/repository"
	"fare-tracker-service/pkg/logger"
)

// ownerQueueSize bounds the messages waiting behind one owner's current message
const ownerQueueSize = 16

// MessageHandler turns one chat line into a reply
type MessageHandler interface {
	Handle(ctx context.Context, ownerID int64, text string) string
}

// BotService long-polls the chat API and feeds messages to a handler.
// Messages from one owner are handled in arrival order; different owners
// are handled concurrently. Each owner has one worker draining a bounded
// queue; messages arriving while it is full are dropped.
type BotService struct {
	updates    repository.ChatUpdateRepository
	notifier   repository.NotifierRepository
	handler    MessageHandler
	logger     logger.Logger
	retryDelay time.Duration

	mu        sync.Mutex
	queues    map[int64]chan entity.ChatMessage
	queueSize int
	wg        sync.WaitGroup
}

// NewBotService creates a new bot service
func NewBotService(
	updates repository.ChatUpdateRepository,
	notifier repository.NotifierRepository,
	handler MessageHandler,
	logger logger.Logger,
	retryDelay time.Duration,
) *BotService {
	return &BotService{
		updates:    updates,
		notifier:   notifier,
		handler:    handler,
		logger:     logger.With("component", "telegram_bot"),
		retryDelay: retryDelay,
		queues:     make(map[int64]chan entity.ChatMessage),
		queueSize:  ownerQueueSize,
	}
}

// WithQueueSize sets how many messages may wait per owner
func (s *BotService) WithQueueSize(n int) *BotService {
	if n > 0 {
		s.queueSize = n
	}
	return s
}

// StartPolling fetches updates until ctx is done, then waits for in-flight
// messages to finish.
func (s *BotService) StartPolling(ctx context.Context) error {
	s.logger.Info("Telegram polling started")
	defer s.wg.Wait()

	var offset int64
	for {
		if ctx.Err() != nil {
			s.logger.Info("Telegram polling stopped")
			return nil
		}

		messages, err := s.updates.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			s.logger.Error("Error polling Telegram", "error", err, "retryIn", s.retryDelay)
			s.wait(ctx)
			continue
		}

		for _, msg := range messages {
			if msg.UpdateID >= offset {
				offset = msg.UpdateID + 1
			}
			if msg.OwnerID == 0 || msg.Text == "" {
				continue
			}
			s.dispatch(ctx, msg)
		}
	}
}

func (s *BotService) wait(ctx context.Context) {
	timer := time.NewTimer(s.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// dispatch queues msg for its owner's worker, starting one if the owner
// has none.
func (s *BotService) dispatch(ctx context.Context, msg entity.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.queues[msg.OwnerID]
	if !ok {
		q = make(chan entity.ChatMessage, s.queueSize)
		s.queues[msg.OwnerID] = q
		s.wg.Add(1)
		go s.work(ctx, msg.OwnerID, q)
	}

	select {
	case q <- msg:
	default:
		s.logger.Warn("Owner queue full, dropping message",
			"ownerId", msg.OwnerID, "updateId", msg.UpdateID, "queueSize", s.queueSize)
	}
}

// work drains q and exits once it is empty. Sends only happen under mu, so
// an empty queue seen under mu stays empty after the owner is removed.
func (s *BotService) work(ctx context.Context, ownerID int64, q chan entity.ChatMessage) {
	defer s.wg.Done()
	for {
		select {
		case msg := <-q:
			s.handle(ctx, msg)
		default:
			s.mu.Lock()
			if len(q) == 0 {
				delete(s.queues, ownerID)
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
		}
	}
}

func (s *BotService) handle(ctx context.Context, msg entity.ChatMessage) {
	log := s.logger.With("ownerId", msg.OwnerID, "updateId", msg.UpdateID)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Panic while handling message", "panic", fmt.Sprint(r))
		}
	}()

	reply := s.handler.Handle(ctx, msg.OwnerID, msg.Text)
	if reply == "" {
		return
	}
	if err := s.notifier.Send(ctx, msg.OwnerID, reply); err != nil {
		log.Error("Failed to send reply", "error", err)
	}
}
