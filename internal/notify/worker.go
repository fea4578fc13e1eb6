package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"appointment-booking-api/internal/model"
)

// Deduper claims a key once; later claims of the same key report false
// until the key is released.
type Deduper interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type RedisDeduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDeduper(rdb *redis.Client, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{rdb: rdb, ttl: ttl}
}

func (d *RedisDeduper) Claim(ctx context.Context, key string) (bool, error) {
	return d.rdb.SetNX(ctx, key, 1, d.ttl).Result()
}

func (d *RedisDeduper) Release(ctx context.Context, key string) error {
	return d.rdb.Del(ctx, key).Err()
}

// Inbox is where delivered notifications end up. *store.Store satisfies it.
type Inbox interface {
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	CreateNotification(ctx context.Context, n *model.Notification) error
}

type Worker struct {
	inbox Inbox
	dedup Deduper
	loc   *time.Location
	log   *zap.Logger
}

func NewWorker(inbox Inbox, dedup Deduper, loc *time.Location, log *zap.Logger) *Worker {
	return &Worker{inbox: inbox, dedup: dedup, loc: loc, log: log}
}

func (w *Worker) HandleTask(ctx context.Context, t *asynq.Task) error {
	var ev Event
	if err := json.Unmarshal(t.Payload(), &ev); err != nil {
		w.log.Error("bad notification payload", zap.Error(err))
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	return w.Deliver(ctx, ev)
}

// Deliver writes the notification for ev unless the same event was already
// claimed. A failed delivery releases its claim so a redelivery can land.
func (w *Worker) Deliver(ctx context.Context, ev Event) (err error) {
	key := fmt.Sprintf("notify:%s:%s:%s", ev.AppointmentID, ev.Kind, ev.RecipientUserID)
	first, err := w.dedup.Claim(ctx, key)
	if err != nil {
		return fmt.Errorf("claim %s: %w", key, err)
	}
	if !first {
		w.log.Debug("duplicate notification dropped", zap.String("key", key))
		return nil
	}
	defer func() {
		if err == nil {
			return
		}
		// the task context may be what failed
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if rerr := w.dedup.Release(rctx, key); rerr != nil {
			w.log.Warn("release notification claim", zap.String("key", key), zap.Error(rerr))
		}
	}()

	a, err := w.inbox.GetAppointment(ctx, ev.AppointmentID)
	if err != nil {
		return fmt.Errorf("load appointment %s: %w", ev.AppointmentID, err)
	}

	title, msg := render(ev.Kind, a, w.loc)
	n := &model.Notification{
		ID:            uuid.NewString(),
		UserID:        ev.RecipientUserID,
		AppointmentID: a.ID,
		Kind:          string(ev.Kind),
		Title:         title,
		Message:       msg,
	}
	if err := w.inbox.CreateNotification(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	w.log.Info("notification delivered",
		zap.String("kind", n.Kind), zap.String("appointment", a.ID), zap.String("recipient", n.UserID))
	return nil
}

func render(kind Kind, a *model.Appointment, loc *time.Location) (title, msg string) {
	start := a.SlotStart.In(loc)
	day, at := start.Format("2006-01-02"), start.Format("15:04")
	switch kind {
	case KindCreated:
		return "New Appointment", fmt.Sprintf("You have a new appointment on %s at %s.", day, at)
	case KindConfirmed:
		return "Appointment Confirmed", fmt.Sprintf("Your appointment on %s at %s has been confirmed.", day, at)
	case KindCancelled:
		return "Appointment Cancelled", fmt.Sprintf("The appointment on %s at %s has been cancelled.", day, at)
	}
	return "Appointment Update", fmt.Sprintf("Your appointment on %s at %s was updated.", day, at)
}

// Start runs the queue consumer in the background. Call Shutdown on the
// returned server to stop it.
func (w *Worker) Start(opt asynq.RedisClientOpt, concurrency int) (*asynq.Server, error) {
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{Queue: 1},
		Logger:      w.log.Sugar(),
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAppointmentNotify, w.HandleTask)
	if err := srv.Start(mux); err != nil {
		return nil, fmt.Errorf("start notification worker: %w", err)
	}
	return srv, nil
}
