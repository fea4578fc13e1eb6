package middleware

import (
	"context"
	"net"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"appointment-booking-api/internal/auth"
	pb "appointment-booking-api/internal/bookingpb"
	"appointment-booking-api/internal/model"
)

const secret = "test-secret"

func info(method string) *grpc.UnaryServerInfo {
	return &grpc.UnaryServerInfo{FullMethod: pb.FullMethod(method)}
}

func echoActor(ctx context.Context, _ any) (any, error) {
	a, _ := ActorFrom(ctx)
	return a, nil
}

func TestAuthOpenMethods(t *testing.T) {
	h := Auth(secret)
	for _, m := range []string{"Register", "Login"} {
		if _, err := h(context.Background(), nil, info(m), echoActor); err != nil {
			t.Errorf("%s: %v", m, err)
		}
	}
}

func TestAuthRejects(t *testing.T) {
	h := Auth(secret)
	cases := map[string]context.Context{
		"no metadata": context.Background(),
		"no token":    metadata.NewIncomingContext(context.Background(), metadata.Pairs()),
		"bad token":   metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer nope")),
	}
	for name, ctx := range cases {
		_, err := h(ctx, nil, info("BookAppointment"), echoActor)
		if status.Code(err) != codes.Unauthenticated {
			t.Errorf("%s: got %v", name, err)
		}
	}
}

func TestAuthInjectsActor(t *testing.T) {
	want := model.Actor{UserID: "u-9", Role: model.RoleProvider}
	tok, err := auth.MakeToken(want, secret)
	if err != nil {
		t.Fatal(err)
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+tok))

	got, err := Auth(secret)(ctx, nil, info("ConfirmAppointment"), echoActor)
	if err != nil {
		t.Fatal(err)
	}
	if got.(model.Actor) != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestRateLimitPerPeer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := RateLimit(NewRateLimiter(ctx, 0.001, 2))
	ok := func(context.Context, any) (any, error) { return nil, nil }

	p1 := peer.NewContext(ctx, &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: 1}})
	p2 := peer.NewContext(ctx, &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 2), Port: 1}})

	for i := 0; i < 2; i++ {
		if _, err := h(p1, nil, info("BookAppointment"), ok); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if _, err := h(p1, nil, info("BookAppointment"), ok); status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("third call: got %v", err)
	}
	if _, err := h(p2, nil, info("BookAppointment"), ok); err != nil {
		t.Fatalf("other peer throttled: %v", err)
	}
	// unlisted methods are never throttled
	for i := 0; i < 5; i++ {
		if _, err := h(p1, nil, info("ListSlots"), ok); err != nil {
			t.Fatalf("ListSlots: %v", err)
		}
	}
}

func TestClientIP(t *testing.T) {
	tcp := func(ip string, port int) context.Context {
		return peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.ParseIP(ip), Port: port}})
	}
	fwd := func(ctx context.Context, v string) context.Context {
		return metadata.NewIncomingContext(ctx, metadata.Pairs("x-forwarded-for", v))
	}

	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{"no peer", context.Background(), "unknown"},
		{"port dropped", tcp("10.0.0.1", 5555), "10.0.0.1"},
		{"remote ignores forwarded", fwd(tcp("10.0.0.1", 5555), "1.2.3.4"), "10.0.0.1"},
		{"loopback uses forwarded", fwd(tcp("127.0.0.1", 5555), "1.2.3.4, 10.9.9.9"), "1.2.3.4"},
		{"loopback without forwarded", tcp("127.0.0.1", 5555), "127.0.0.1"},
		{"ipv6 loopback", fwd(tcp("::1", 5555), "2001:db8::1"), "2001:db8::1"},
	}
	for _, tt := range tests {
		if got := clientIP(tt.ctx); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRateLimitIgnoresSourcePort(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := RateLimit(NewRateLimiter(ctx, 0.001, 1))
	ok := func(context.Context, any) (any, error) { return nil, nil }

	first := peer.NewContext(ctx, &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 3), Port: 1000}})
	again := peer.NewContext(ctx, &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 3), Port: 2000}})
	if _, err := h(first, nil, info("Login"), ok); err != nil {
		t.Fatal(err)
	}
	if _, err := h(again, nil, info("Login"), ok); status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("reconnect got a fresh bucket: %v", err)
	}
}

func TestLoggingPassesThrough(t *testing.T) {
	want := status.Error(codes.NotFound, "appointment not found")
	_, err := Logging(zap.NewNop())(context.Background(), nil, info("GetAppointment"),
		func(context.Context, any) (any, error) { return nil, want })
	if err != want {
		t.Fatalf("got %v", err)
	}
}
