package bookingpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "booking.v1.BookingService"

// FullMethod returns the gRPC path for one of the service's methods.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type BookingServiceServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	CreateSlot(context.Context, *CreateSlotRequest) (*SlotResponse, error)
	ListSlots(context.Context, *ListSlotsRequest) (*ListSlotsResponse, error)
	BookAppointment(context.Context, *BookAppointmentRequest) (*AppointmentResponse, error)
	ConfirmAppointment(context.Context, *AppointmentIDRequest) (*AppointmentResponse, error)
	CancelAppointment(context.Context, *AppointmentIDRequest) (*AppointmentResponse, error)
	CompleteAppointment(context.Context, *AppointmentIDRequest) (*AppointmentResponse, error)
	GetAppointment(context.Context, *AppointmentIDRequest) (*AppointmentResponse, error)
	ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error)
	ListNotifications(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error)
	MarkNotificationRead(context.Context, *MarkNotificationReadRequest) (*NotificationResponse, error)
	mustEmbedUnimplementedBookingServiceServer()
}

// UnimplementedBookingServiceServer must be embedded so that adding methods
// does not break existing servers.
type UnimplementedBookingServiceServer struct{}

func (UnimplementedBookingServiceServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedBookingServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedBookingServiceServer) CreateSlot(context.Context, *CreateSlotRequest) (*SlotResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateSlot not implemented")
}
func (UnimplementedBookingServiceServer) ListSlots(context.Context, *ListSlotsRequest) (*ListSlotsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSlots not implemented")
}
func (UnimplementedBookingServiceServer) BookAppointment(context.Context, *BookAppointmentRequest) (*AppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method BookAppointment not implemented")
}
func (UnimplementedBookingServiceServer) ConfirmAppointment(context.Context, *AppointmentIDRequest) (*AppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ConfirmAppointment not implemented")
}
func (UnimplementedBookingServiceServer) CancelAppointment(context.Context, *AppointmentIDRequest) (*AppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CancelAppointment not implemented")
}
func (UnimplementedBookingServiceServer) CompleteAppointment(context.Context, *AppointmentIDRequest) (*AppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CompleteAppointment not implemented")
}
func (UnimplementedBookingServiceServer) GetAppointment(context.Context, *AppointmentIDRequest) (*AppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAppointment not implemented")
}
func (UnimplementedBookingServiceServer) ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAppointments not implemented")
}
func (UnimplementedBookingServiceServer) ListNotifications(context.Context, *ListNotificationsRequest) (*ListNotificationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListNotifications not implemented")
}
func (UnimplementedBookingServiceServer) MarkNotificationRead(context.Context, *MarkNotificationReadRequest) (*NotificationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MarkNotificationRead not implemented")
}
func (UnimplementedBookingServiceServer) mustEmbedUnimplementedBookingServiceServer() {}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", BookingServiceServer.Register),
		unary("Login", BookingServiceServer.Login),
		unary("CreateSlot", BookingServiceServer.CreateSlot),
		unary("ListSlots", BookingServiceServer.ListSlots),
		unary("BookAppointment", BookingServiceServer.BookAppointment),
		unary("ConfirmAppointment", BookingServiceServer.ConfirmAppointment),
		unary("CancelAppointment", BookingServiceServer.CancelAppointment),
		unary("CompleteAppointment", BookingServiceServer.CompleteAppointment),
		unary("GetAppointment", BookingServiceServer.GetAppointment),
		unary("ListAppointments", BookingServiceServer.ListAppointments),
		unary("ListNotifications", BookingServiceServer.ListNotifications),
		unary("MarkNotificationRead", BookingServiceServer.MarkNotificationRead),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "booking/v1/booking.proto",
}

// unary adapts a typed server method to grpc's untyped handler signature.
func unary[Req any, PReq interface {
	*Req
	Message
}, Resp any](name string, call func(BookingServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	full := FullMethod(name)
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(BookingServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(PReq))
			})
		},
	}
}
