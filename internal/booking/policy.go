package booking

import (
	"time"

	"appointment-booking-api/internal/model"
)

// Policy holds the clinic's booking window rules.
type Policy struct {
	MinAdvance time.Duration
	MaxAdvance time.Duration
	Days       []time.Weekday
	// Open and Close are offsets from local midnight; a slot must fit in
	// [Open, Close].
	Open     time.Duration
	Close    time.Duration
	Location *time.Location
}

func DefaultPolicy() Policy {
	return Policy{
		MinAdvance: 2 * time.Hour,
		MaxAdvance: 90 * 24 * time.Hour,
		Days:       []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		Open:       8 * time.Hour,
		Close:      18 * time.Hour,
		Location:   time.UTC,
	}
}

func (p Policy) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

func (p Policy) businessDay(d time.Weekday) bool {
	for _, w := range p.Days {
		if w == d {
			return true
		}
	}
	return false
}

// Check validates slot against the window rules at now.
func (p Policy) Check(slot *model.Slot, now time.Time) error {
	if slot.Start.Before(now) {
		return invalid("slot is in the past")
	}

	loc := p.loc()
	day := slot.Date(loc)
	if !p.businessDay(day.Weekday()) {
		return invalid("clinic is closed on %s", day.Weekday())
	}
	if clock(slot.Start, day, loc) < p.Open || clock(slot.End, day, loc) > p.Close {
		return invalid("slot is outside business hours")
	}

	if slot.Start.Before(now.Add(p.MinAdvance)) {
		return invalid("appointments must be booked at least %s in advance", p.MinAdvance)
	}
	if p.MaxAdvance > 0 && slot.Start.After(now.Add(p.MaxAdvance)) {
		return invalid("appointments cannot be booked more than %s in advance", p.MaxAdvance)
	}
	return nil
}

// clock is the wall-clock offset of t from the start of day in loc, so a
// DST shift does not move the business-hours window. A time on a later
// calendar day counts past 24h.
func clock(t, day time.Time, loc *time.Location) time.Duration {
	lt := t.In(loc)
	y, m, d := lt.Date()
	dy, dm, dd := day.Date()
	days := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Sub(time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)) / (24 * time.Hour)
	return days*24*time.Hour +
		time.Duration(lt.Hour())*time.Hour +
		time.Duration(lt.Minute())*time.Minute +
		time.Duration(lt.Second())*time.Second +
		time.Duration(lt.Nanosecond())
}
