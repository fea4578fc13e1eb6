package store

import (
	"context"

	"appointment-booking-api/internal/model"
)

const notificationCols = `id, user_id, appointment_id, kind, title, message, read, created_at`

func scanNotification(row interface{ Scan(...any) error }, n *model.Notification) error {
	return row.Scan(&n.ID, &n.UserID, &n.AppointmentID, &n.Kind, &n.Title, &n.Message, &n.Read, &n.CreatedAt)
}

func (s *Store) CreateNotification(ctx context.Context, n *model.Notification) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO notifications (id, user_id, appointment_id, kind, title, message)
		 VALUES ($1,$2,$3,$4,$5,$6) RETURNING created_at`,
		n.ID, n.UserID, n.AppointmentID, n.Kind, n.Title, n.Message,
	).Scan(&n.CreatedAt)
	return classify(err)
}

// newest first
func (s *Store) ListNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+notificationCols+`
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := scanNotification(rows, &n); err != nil {
			return nil, classify(err)
		}
		out = append(out, n)
	}
	return out, classify(rows.Err())
}

// MarkNotificationRead flags one of userID's notifications as read. Someone
// else's notification is ErrNotFound, same as a missing one. Marking twice
// is a no-op.
func (s *Store) MarkNotificationRead(ctx context.Context, userID, id string) (*model.Notification, error) {
	var n model.Notification
	err := scanNotification(s.pool.QueryRow(ctx,
		`UPDATE notifications SET read = TRUE
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+notificationCols, id, userID), &n)
	if err != nil {
		return nil, classify(err)
	}
	return &n, nil
}
