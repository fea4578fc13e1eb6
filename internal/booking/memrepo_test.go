package booking

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/notify"
	"appointment-booking-api/internal/store"
)

// memRepo serializes transactions under one mutex and enforces the
// one-active-claim-per-slot rule on insert, like the partial unique index.
type memRepo struct {
	mu    sync.Mutex
	slots map[string]model.Slot
	appts map[string]model.Appointment
	roles map[string]model.Role

	contention int // next InTx calls that fail before running
	txCalls    int
}

func newMemRepo() *memRepo {
	return &memRepo{slots: map[string]model.Slot{}, appts: map[string]model.Appointment{}, roles: map[string]model.Role{}}
}

func (m *memRepo) addSlot(sl model.Slot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[sl.ID] = sl
}

func (m *memRepo) addAppointment(a model.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appts[a.ID] = a
}

func (m *memRepo) slot(id string) model.Slot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[id]
}

func (m *memRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appts)
}

func (m *memRepo) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txCalls
}

func (m *memRepo) UserRole(_ context.Context, id string) (model.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.roles[id]
	if !ok {
		return "", store.ErrNotFound
	}
	return r, nil
}

func (m *memRepo) GetSlot(_ context.Context, id string) (*model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sl, ok := m.slots[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &sl, nil
}

func (m *memRepo) InTx(_ context.Context, fn func(store.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txCalls++
	if m.contention > 0 {
		m.contention--
		return fmt.Errorf("%w: lock timeout", store.ErrContention)
	}
	tx := &memTx{slots: maps.Clone(m.slots), appts: maps.Clone(m.appts)}
	if err := fn(tx); err != nil {
		return err
	}
	m.slots, m.appts = tx.slots, tx.appts
	return nil
}

func (m *memRepo) GetAppointment(_ context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	withSlot(&a, m.slots)
	return &a, nil
}

func (m *memRepo) ListAppointments(_ context.Context, actor model.Actor, status model.Status) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Appointment
	for _, a := range m.appts {
		if !actor.IsAdmin() && !a.Party(actor.UserID) {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		withSlot(&a, m.slots)
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotStart.Before(out[j].SlotStart) })
	return out, nil
}

func (m *memRepo) HasOverlap(_ context.Context, requesterID string, start, end time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appts {
		if a.RequesterID != requesterID || !a.Status.Active() {
			continue
		}
		sl := m.slots[a.SlotID]
		if sl.Start.Before(end) && sl.End.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) CreateSlot(_ context.Context, sl *model.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.slots {
		if o.ProviderID == sl.ProviderID && o.Start.Before(sl.End) && o.End.After(sl.Start) {
			return store.ErrOverlap
		}
	}
	sl.Available = true
	m.slots[sl.ID] = *sl
	return nil
}

func (m *memRepo) ListSlots(_ context.Context, providerID string, from, to time.Time, onlyAvailable bool) ([]model.Slot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Slot
	for _, sl := range m.slots {
		if sl.ProviderID != providerID || sl.Start.Before(from) || sl.End.After(to) {
			continue
		}
		if onlyAvailable && !sl.Available {
			continue
		}
		out = append(out, sl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func withSlot(a *model.Appointment, slots map[string]model.Slot) {
	sl := slots[a.SlotID]
	a.SlotStart, a.SlotEnd = sl.Start, sl.End
}

type memTx struct {
	slots map[string]model.Slot
	appts map[string]model.Appointment
}

func (t *memTx) SlotByID(_ context.Context, id string) (*model.Slot, error) {
	sl, ok := t.slots[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &sl, nil
}

func (t *memTx) SetSlotAvailability(_ context.Context, id string, available bool) (bool, error) {
	sl, ok := t.slots[id]
	if !ok {
		return false, store.ErrNotFound
	}
	sl.Available = available
	t.slots[id] = sl
	return available, nil
}

func (t *memTx) InsertAppointment(_ context.Context, a *model.Appointment) error {
	for _, o := range t.appts {
		if o.SlotID == a.SlotID && o.Status.Active() {
			return fmt.Errorf("%w: duplicate key", store.ErrSlotClaimed)
		}
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	t.appts[a.ID] = *a
	return nil
}

func (t *memTx) AppointmentByID(_ context.Context, id string) (*model.Appointment, error) {
	a, ok := t.appts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	withSlot(&a, t.slots)
	return &a, nil
}

func (t *memTx) TransitionAppointment(_ context.Context, id string, from, to model.Status, actorID string) (*model.Appointment, error) {
	a, ok := t.appts[id]
	if !ok || a.Status != from {
		return nil, store.ErrContention
	}
	a.Status = to
	if to == model.StatusCancelled {
		a.CancelledBy = actorID
	}
	a.UpdatedAt = time.Now()
	t.appts[id] = a
	withSlot(&a, t.slots)
	return &a, nil
}

func (t *memTx) CountActiveClaims(_ context.Context, slotID string) (int, error) {
	n := 0
	for _, a := range t.appts {
		if a.SlotID == slotID && a.Status.Active() {
			n++
		}
	}
	return n, nil
}

// recorder captures dispatched events.
type recorder struct {
	events chan notify.Event
	err    error
}

func newRecorder() *recorder {
	return &recorder{events: make(chan notify.Event, 32)}
}

func (r *recorder) Dispatch(_ context.Context, ev notify.Event) error {
	r.events <- ev
	return r.err
}

func (r *recorder) next(timeout time.Duration) (notify.Event, bool) {
	select {
	case ev := <-r.events:
		return ev, true
	case <-time.After(timeout):
		return notify.Event{}, false
	}
}
