package bookingpb

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Role     string
}

func (m *RegisterRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.Email)
	e.str(2, m.Password)
	e.str(3, m.Name)
	e.str(4, m.Role)
	return e, nil
}

func (m *RegisterRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Email = f.str()
		case 2:
			m.Password = f.str()
		case 3:
			m.Name = f.str()
		case 4:
			m.Role = f.str()
		}
		return nil
	})
}

type RegisterResponse struct {
	UserId string
	Token  string
}

func (m *RegisterResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.UserId)
	e.str(2, m.Token)
	return e, nil
}

func (m *RegisterResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.UserId = f.str()
		case 2:
			m.Token = f.str()
		}
		return nil
	})
}

type LoginRequest struct {
	Email    string
	Password string
}

func (m *LoginRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.Email)
	e.str(2, m.Password)
	return e, nil
}

func (m *LoginRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Email = f.str()
		case 2:
			m.Password = f.str()
		}
		return nil
	})
}

type LoginResponse struct {
	Token  string
	UserId string
	Name   string
	Role   string
}

func (m *LoginResponse) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.Token)
	e.str(2, m.UserId)
	e.str(3, m.Name)
	e.str(4, m.Role)
	return e, nil
}

func (m *LoginResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.Token = f.str()
		case 2:
			m.UserId = f.str()
		case 3:
			m.Name = f.str()
		case 4:
			m.Role = f.str()
		}
		return nil
	})
}

type Slot struct {
	Id         string
	ProviderId string
	StartTime  *timestamppb.Timestamp
	EndTime    *timestamppb.Timestamp
	Available  bool
}

func (m *Slot) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.Id)
	e.str(2, m.ProviderId)
	if err := e.ts(3, m.StartTime); err != nil {
		return nil, err
	}
	if err := e.ts(4, m.EndTime); err != nil {
		return nil, err
	}
	e.boolean(5, m.Available)
	return e, nil
}

func (m *Slot) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Id = f.str()
		case 2:
			m.ProviderId = f.str()
		case 3:
			m.StartTime, err = f.ts()
		case 4:
			m.EndTime, err = f.ts()
		case 5:
			m.Available = f.boolean()
		}
		return err
	})
}

type CreateSlotRequest struct {
	ProviderId string
	StartTime  *timestamppb.Timestamp
	EndTime    *timestamppb.Timestamp
}

func (m *CreateSlotRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.ProviderId)
	if err := e.ts(2, m.StartTime); err != nil {
		return nil, err
	}
	if err := e.ts(3, m.EndTime); err != nil {
		return nil, err
	}
	return e, nil
}

func (m *CreateSlotRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.ProviderId = f.str()
		case 2:
			m.StartTime, err = f.ts()
		case 3:
			m.EndTime, err = f.ts()
		}
		return err
	})
}

type SlotResponse struct {
	Slot *Slot
}

func (m *SlotResponse) MarshalWire() ([]byte, error) {
	var e encoder
	if m.Slot != nil {
		if err := e.msg(1, m.Slot); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (m *SlotResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		m.Slot = &Slot{}
		return m.Slot.UnmarshalWire(f.b)
	})
}

type ListSlotsRequest struct {
	ProviderId    string
	RangeStart    *timestamppb.Timestamp
	RangeEnd      *timestamppb.Timestamp
	OnlyAvailable bool
}

func (m *ListSlotsRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.ProviderId)
	if err := e.ts(2, m.RangeStart); err != nil {
		return nil, err
	}
	if err := e.ts(3, m.RangeEnd); err != nil {
		return nil, err
	}
	e.boolean(4, m.OnlyAvailable)
	return e, nil
}

func (m *ListSlotsRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.ProviderId = f.str()
		case 2:
			m.RangeStart, err = f.ts()
		case 3:
			m.RangeEnd, err = f.ts()
		case 4:
			m.OnlyAvailable = f.boolean()
		}
		return err
	})
}

type ListSlotsResponse struct {
	Slots []*Slot
}

func (m *ListSlotsResponse) MarshalWire() ([]byte, error) {
	var e encoder
	for _, s := range m.Slots {
		if err := e.msg(1, s); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (m *ListSlotsResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		s := &Slot{}
		if err := s.UnmarshalWire(f.b); err != nil {
			return err
		}
		m.Slots = append(m.Slots, s)
		return nil
	})
}

type BookAppointmentRequest struct {
	RequesterId string
	ProviderId  string
	SlotId      string
	Notes       string
}

func (m *BookAppointmentRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.RequesterId)
	e.str(2, m.ProviderId)
	e.str(3, m.SlotId)
	e.str(4, m.Notes)
	return e, nil
}

func (m *BookAppointmentRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		switch f.num {
		case 1:
			m.RequesterId = f.str()
		case 2:
			m.ProviderId = f.str()
		case 3:
			m.SlotId = f.str()
		case 4:
			m.Notes = f.str()
		}
		return nil
	})
}

// AppointmentIDRequest is shared by Get, Confirm, Cancel and Complete.
type AppointmentIDRequest struct {
	Id string
}

func (m *AppointmentIDRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.Id)
	return e, nil
}

func (m *AppointmentIDRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.Id = f.str()
		}
		return nil
	})
}

type Appointment struct {
	Id          string
	RequesterId string
	ProviderId  string
	SlotId      string
	Status      string
	Notes       string
	CancelledBy string
	StartTime   *timestamppb.Timestamp
	EndTime     *timestamppb.Timestamp
	CreatedAt   *timestamppb.Timestamp
	UpdatedAt   *timestamppb.Timestamp
}

func (m *Appointment) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.Id)
	e.str(2, m.RequesterId)
	e.str(3, m.ProviderId)
	e.str(4, m.SlotId)
	e.str(5, m.Status)
	e.str(6, m.Notes)
	e.str(7, m.CancelledBy)
	if err := e.ts(8, m.StartTime); err != nil {
		return nil, err
	}
	if err := e.ts(9, m.EndTime); err != nil {
		return nil, err
	}
	if err := e.ts(10, m.CreatedAt); err != nil {
		return nil, err
	}
	if err := e.ts(11, m.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

func (m *Appointment) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Id = f.str()
		case 2:
			m.RequesterId = f.str()
		case 3:
			m.ProviderId = f.str()
		case 4:
			m.SlotId = f.str()
		case 5:
			m.Status = f.str()
		case 6:
			m.Notes = f.str()
		case 7:
			m.CancelledBy = f.str()
		case 8:
			m.StartTime, err = f.ts()
		case 9:
			m.EndTime, err = f.ts()
		case 10:
			m.CreatedAt, err = f.ts()
		case 11:
			m.UpdatedAt, err = f.ts()
		}
		return err
	})
}

type AppointmentResponse struct {
	Appointment *Appointment
}

func (m *AppointmentResponse) MarshalWire() ([]byte, error) {
	var e encoder
	if m.Appointment != nil {
		if err := e.msg(1, m.Appointment); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (m *AppointmentResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		m.Appointment = &Appointment{}
		return m.Appointment.UnmarshalWire(f.b)
	})
}

type ListAppointmentsRequest struct {
	Status string
}

func (m *ListAppointmentsRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.Status)
	return e, nil
}

func (m *ListAppointmentsRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.Status = f.str()
		}
		return nil
	})
}

type ListAppointmentsResponse struct {
	Appointments []*Appointment
}

func (m *ListAppointmentsResponse) MarshalWire() ([]byte, error) {
	var e encoder
	for _, a := range m.Appointments {
		if err := e.msg(1, a); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (m *ListAppointmentsResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		a := &Appointment{}
		if err := a.UnmarshalWire(f.b); err != nil {
			return err
		}
		m.Appointments = append(m.Appointments, a)
		return nil
	})
}

type Notification struct {
	Id            string
	AppointmentId string
	Kind          string
	Title         string
	Message       string
	CreatedAt     *timestamppb.Timestamp
	Read          bool
}

func (m *Notification) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.Id)
	e.str(2, m.AppointmentId)
	e.str(3, m.Kind)
	e.str(4, m.Title)
	e.str(5, m.Message)
	if err := e.ts(6, m.CreatedAt); err != nil {
		return nil, err
	}
	e.boolean(7, m.Read)
	return e, nil
}

func (m *Notification) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Id = f.str()
		case 2:
			m.AppointmentId = f.str()
		case 3:
			m.Kind = f.str()
		case 4:
			m.Title = f.str()
		case 5:
			m.Message = f.str()
		case 6:
			m.CreatedAt, err = f.ts()
		case 7:
			m.Read = f.boolean()
		}
		return err
	})
}

type MarkNotificationReadRequest struct {
	Id string
}

func (m *MarkNotificationReadRequest) MarshalWire() ([]byte, error) {
	var e encoder
	e.str(1, m.Id)
	return e, nil
}

func (m *MarkNotificationReadRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num == 1 {
			m.Id = f.str()
		}
		return nil
	})
}

type NotificationResponse struct {
	Notification *Notification
}

func (m *NotificationResponse) MarshalWire() ([]byte, error) {
	var e encoder
	if m.Notification != nil {
		if err := e.msg(1, m.Notification); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (m *NotificationResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		m.Notification = &Notification{}
		return m.Notification.UnmarshalWire(f.b)
	})
}

// ListNotificationsRequest has no fields; the caller comes from the token.
type ListNotificationsRequest struct{}

func (m *ListNotificationsRequest) MarshalWire() ([]byte, error) { return nil, nil }

func (m *ListNotificationsRequest) UnmarshalWire(b []byte) error {
	return walk(b, func(field) error { return nil })
}

type ListNotificationsResponse struct {
	Notifications []*Notification
}

func (m *ListNotificationsResponse) MarshalWire() ([]byte, error) {
	var e encoder
	for _, n := range m.Notifications {
		if err := e.msg(1, n); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (m *ListNotificationsResponse) UnmarshalWire(b []byte) error {
	return walk(b, func(f field) error {
		if f.num != 1 {
			return nil
		}
		n := &Notification{}
		if err := n.UnmarshalWire(f.b); err != nil {
			return err
		}
		m.Notifications = append(m.Notifications, n)
		return nil
	})
}
