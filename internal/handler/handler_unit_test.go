package handler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/booking"
	pb "appointment-booking-api/internal/bookingpb"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

const secret = "test-secret"

type fakeAccounts struct {
	mu    sync.Mutex
	users map[string]*model.User
	inbox map[string][]model.Notification
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{users: map[string]*model.User{}, inbox: map[string][]model.Notification{}}
}

func (f *fakeAccounts) CreateUser(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Email]; ok {
		return fmt.Errorf("%w: email", store.ErrDuplicate)
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeAccounts) UserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeAccounts) ListNotifications(_ context.Context, userID string) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inbox[userID], nil
}

func (f *fakeAccounts) MarkNotificationRead(_ context.Context, userID, id string) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.inbox[userID] {
		if n := &f.inbox[userID][i]; n.ID == id {
			n.Read = true
			c := *n
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func newUnitHandler() (*Handler, *fakeAccounts) {
	acc := newFakeAccounts()
	return New(acc, nil, secret, zap.NewNop()), acc
}

func TestRegisterDefaultsToPatient(t *testing.T) {
	h, _ := newUnitHandler()
	rr, err := h.Register(context.Background(), &pb.RegisterRequest{
		Email: " Pat@Example.com ", Password: "testpass123", Name: "Pat",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	c, err := auth.ParseToken(rr.Token, secret)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if c.Role != model.RolePatient || c.UserID != rr.UserId {
		t.Errorf("claims = %+v", c)
	}
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newUnitHandler()
	tests := []struct {
		name string
		req  *pb.RegisterRequest
	}{
		{"empty email", &pb.RegisterRequest{Password: "testpass123", Name: "X"}},
		{"bad email", &pb.RegisterRequest{Email: "nope", Password: "testpass123", Name: "X"}},
		{"short password", &pb.RegisterRequest{Email: "a@b.com", Password: "short", Name: "X"}},
		{"empty name", &pb.RegisterRequest{Email: "a@b.com", Password: "testpass123", Name: "  "}},
		{"admin self-signup", &pb.RegisterRequest{Email: "a@b.com", Password: "testpass123", Name: "X", Role: "admin"}},
		{"unknown role", &pb.RegisterRequest{Email: "a@b.com", Password: "testpass123", Name: "X", Role: "nurse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Register(context.Background(), tt.req)
			if status.Code(err) != codes.InvalidArgument {
				t.Errorf("got %v, want InvalidArgument", err)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h, _ := newUnitHandler()
	req := &pb.RegisterRequest{Email: "dup@example.com", Password: "testpass123", Name: "D", Role: "provider"}
	if _, err := h.Register(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	_, err := h.Register(context.Background(), req)
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("got %v, want AlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	h, _ := newUnitHandler()
	ctx := context.Background()
	if _, err := h.Register(ctx, &pb.RegisterRequest{
		Email: "dr@example.com", Password: "testpass123", Name: "Dr", Role: "Provider",
	}); err != nil {
		t.Fatal(err)
	}

	lr, err := h.Login(ctx, &pb.LoginRequest{Email: "DR@example.com", Password: "testpass123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if lr.Role != "provider" || lr.Name != "Dr" || lr.Token == "" {
		t.Errorf("got %+v", lr)
	}

	for _, req := range []*pb.LoginRequest{
		{Email: "dr@example.com", Password: "wrongpass1"},
		{Email: "ghost@example.com", Password: "testpass123"},
	} {
		if _, err := h.Login(ctx, req); status.Code(err) != codes.Unauthenticated {
			t.Errorf("%s: got %v", req.Email, err)
		}
	}
}

func TestListNotifications(t *testing.T) {
	h, acc := newUnitHandler()
	acc.inbox["u-1"] = []model.Notification{
		{ID: "n-2", AppointmentID: "a-1", Kind: "confirmed", Title: "Appointment Confirmed", CreatedAt: time.Now()},
		{ID: "n-1", AppointmentID: "a-1", Kind: "created", Title: "New Appointment", CreatedAt: time.Now().Add(-time.Hour)},
	}

	if _, err := h.ListNotifications(context.Background(), &pb.ListNotificationsRequest{}); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("no actor: got %v", err)
	}

	ctx := middleware.WithActor(context.Background(), model.Actor{UserID: "u-1", Role: model.RolePatient})
	resp, err := h.ListNotifications(ctx, &pb.ListNotificationsRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Notifications) != 2 || resp.Notifications[0].Id != "n-2" || resp.Notifications[0].CreatedAt == nil {
		t.Errorf("got %+v", resp.Notifications)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	h, acc := newUnitHandler()
	acc.inbox["u-1"] = []model.Notification{{ID: "n-1", AppointmentID: "a-1", Kind: "created", CreatedAt: time.Now()}}
	acc.inbox["u-2"] = []model.Notification{{ID: "n-9", AppointmentID: "a-2", Kind: "created", CreatedAt: time.Now()}}
	ctx := middleware.WithActor(context.Background(), model.Actor{UserID: "u-1", Role: model.RolePatient})

	resp, err := h.MarkNotificationRead(ctx, &pb.MarkNotificationReadRequest{Id: "n-1"})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Notification.Read {
		t.Error("returned notification not marked read")
	}
	list, _ := h.ListNotifications(ctx, &pb.ListNotificationsRequest{})
	if !list.Notifications[0].Read {
		t.Error("inbox not updated")
	}

	tests := []struct {
		name string
		ctx  context.Context
		id   string
		want codes.Code
	}{
		{"no actor", context.Background(), "n-1", codes.Unauthenticated},
		{"empty id", ctx, "", codes.InvalidArgument},
		{"someone else's", ctx, "n-9", codes.NotFound},
		{"missing", ctx, "n-404", codes.NotFound},
	}
	for _, tt := range tests {
		_, err := h.MarkNotificationRead(tt.ctx, &pb.MarkNotificationReadRequest{Id: tt.id})
		if status.Code(err) != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
	if acc.inbox["u-2"][0].Read {
		t.Error("other user's notification changed")
	}
}

func TestToStatus(t *testing.T) {
	h, _ := newUnitHandler()
	tests := []struct {
		err  error
		want codes.Code
	}{
		{&booking.ValidationError{Reason: "slot is in the past"}, codes.InvalidArgument},
		{&booking.ConflictError{SlotID: "s"}, codes.AlreadyExists},
		{&booking.NotFoundError{Entity: "slot", ID: "s"}, codes.NotFound},
		{&booking.AuthorizationError{Reason: "no"}, codes.PermissionDenied},
		{&booking.InvalidStateError{Op: "cancel", Status: model.StatusCompleted}, codes.FailedPrecondition},
		{&booking.TransientError{Attempts: 3, Err: store.ErrContention}, codes.Unavailable},
		{fmt.Errorf("gave up: %w", context.DeadlineExceeded), codes.DeadlineExceeded},
		{errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		got := status.Code(h.toStatus("op", tt.err))
		if got != tt.want {
			t.Errorf("%T: got %v, want %v", tt.err, got, tt.want)
		}
	}

	// retry mechanics stay out of the client message
	st, _ := status.FromError(h.toStatus("book", &booking.TransientError{Attempts: 3, Err: store.ErrContention}))
	if st.Message() != "booking temporarily unavailable, try again" {
		t.Errorf("message = %q", st.Message())
	}
}
