package grpcweb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// maxBody caps a single browser request; booking messages are tiny.
const maxBody = 1 << 20

// Bridge translates gRPC-Web (browser HTTP/1.1) → native gRPC via TCP.
// Every call goes through the real server so interceptors always run.
type Bridge struct {
	conn *grpc.ClientConn
	log  *zap.Logger
}

// New dials the gRPC server at addr (e.g. "localhost:50051").
func New(addr string, log *zap.Logger) (*Bridge, error) {
	conn, err := grpc.NewClient(
		addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("grpcweb dial: %w", err)
	}
	return &Bridge{conn: conn, log: log}, nil
}

func (b *Bridge) Close() error { return b.conn.Close() }

// Handler returns an http.Handler that translates gRPC-Web → gRPC, with CORS
// restricted to origins ("*" allows any).
func (b *Bridge) Handler(origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Grpc-Web", "X-User-Agent", "Authorization", "X-Request-Id"},
		ExposedHeaders: []string{"Grpc-Status", "Grpc-Message", "Grpc-Status-Details-Bin"},
		MaxAge:         86400,
	})
	return c.Handler(http.HandlerFunc(b.serve))
}

func (b *Bridge) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/grpc-web") {
		http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
		return
	}
	b.log.Debug("grpc-web", zap.String("path", r.URL.Path))
	b.forward(w, r)
}

var (
	errShortBody  = errors.New("body too short")
	errIncomplete = errors.New("incomplete frame")
)

// unframe strips the grpc-web envelope:
// 1-byte flag + 4-byte big-endian length + protobuf
func unframe(body []byte) ([]byte, error) {
	if len(body) < 5 {
		return nil, errShortBody
	}
	msgLen := binary.BigEndian.Uint32(body[1:5])
	if uint64(msgLen)+5 > uint64(len(body)) {
		return nil, errIncomplete
	}
	return body[5 : 5+msgLen], nil
}

func (b *Bridge) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, codes.Internal, "read body failed")
		return
	}
	payload, err := unframe(body)
	if err != nil {
		writeError(w, codes.InvalidArgument, err.Error())
		return
	}

	// forward metadata
	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	if id := r.Header.Get("X-Request-Id"); id != "" {
		md.Set("x-request-id", id)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		md.Set("x-forwarded-for", host)
	} else if r.RemoteAddr != "" {
		md.Set("x-forwarded-for", r.RemoteAddr)
	}
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	// invoke gRPC method using raw codec (pass-through bytes)
	resp := &rawMsg{}
	err = b.conn.Invoke(ctx, r.URL.Path, &rawMsg{data: payload}, resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		st, _ := status.FromError(err)
		b.log.Debug("grpc-web error", zap.String("path", r.URL.Path),
			zap.String("code", st.Code().String()), zap.String("msg", st.Message()))
		writeError(w, st.Code(), st.Message())
		return
	}

	writeSuccess(w, resp.data)
}

// rawMsg wraps raw protobuf bytes.
type rawMsg struct{ data []byte }

// rawCodec passes bytes through without marshal/unmarshal.
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	return v.(*rawMsg).data, nil
}
func (rawCodec) Unmarshal(data []byte, v any) error {
	m := v.(*rawMsg)
	m.data = append([]byte(nil), data...)
	return nil
}
func (rawCodec) Name() string { return "raw" }

func frame(flag byte, data []byte) []byte {
	f := make([]byte, 5+len(data))
	f[0] = flag
	binary.BigEndian.PutUint32(f[1:5], uint32(len(data)))
	copy(f[5:], data)
	return f
}

func trailer(code codes.Code, msg string) []byte {
	t := fmt.Sprintf("grpc-status:%d\r\n", code)
	if msg != "" {
		t += "grpc-message:" + msg + "\r\n"
	}
	return frame(0x80, []byte(t))
}

func writeError(w http.ResponseWriter, code codes.Code, msg string) {
	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	w.Write(trailer(code, msg))
}

func writeSuccess(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	w.Write(frame(0x00, data))
	w.Write(trailer(codes.OK, ""))
}
