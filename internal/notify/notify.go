package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type Kind string

const (
	KindCreated   Kind = "created"
	KindConfirmed Kind = "confirmed"
	KindCancelled Kind = "cancelled"
)

// Event is what the booking coordinator emits after a committed change.
type Event struct {
	AppointmentID   string    `json:"appointment_id"`
	Kind            Kind      `json:"kind"`
	RecipientUserID string    `json:"recipient_user_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}

type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event) error
}

const (
	TypeAppointmentNotify = "appointment:notify"
	Queue                 = "notifications"
)

// AsynqDispatcher enqueues events for the notification worker. Tasks are
// never retried by the queue: delivery is attempted at most once.
type AsynqDispatcher struct {
	client *asynq.Client
}

func NewAsynqDispatcher(client *asynq.Client) *AsynqDispatcher {
	return &AsynqDispatcher{client: client}
}

func NewTask(ev Event) (*asynq.Task, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAppointmentNotify, b), nil
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, ev Event) error {
	task, err := NewTask(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	_, err = d.client.EnqueueContext(ctx, task,
		asynq.Queue(Queue),
		asynq.MaxRetry(0),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s/%s: %w", ev.Kind, ev.AppointmentID, err)
	}
	return nil
}

// LogDispatcher only logs; used when no queue is configured.
type LogDispatcher struct {
	log *zap.Logger
}

func NewLogDispatcher(log *zap.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Dispatch(_ context.Context, ev Event) error {
	d.log.Info("notification",
		zap.String("kind", string(ev.Kind)),
		zap.String("appointment", ev.AppointmentID),
		zap.String("recipient", ev.RecipientUserID))
	return nil
}
