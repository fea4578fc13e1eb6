// Package bookingpb holds the wire types for booking.v1.BookingService.
//
// Messages are encoded by hand with protowire so the service stays
// byte-compatible with booking.proto clients without a protoc step.
package bookingpb

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Message is implemented by every request and response type.
type Message interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire([]byte) error
}

type encoder []byte

func (e *encoder) str(num protowire.Number, s string) {
	if s == "" {
		return
	}
	*e = protowire.AppendTag(*e, num, protowire.BytesType)
	*e = protowire.AppendString(*e, s)
}

func (e *encoder) boolean(num protowire.Number, v bool) {
	if !v {
		return
	}
	*e = protowire.AppendTag(*e, num, protowire.VarintType)
	*e = protowire.AppendVarint(*e, protowire.EncodeBool(v))
}

func (e *encoder) bytes(num protowire.Number, b []byte) {
	*e = protowire.AppendTag(*e, num, protowire.BytesType)
	*e = protowire.AppendBytes(*e, b)
}

func (e *encoder) ts(num protowire.Number, t *timestamppb.Timestamp) error {
	if t == nil {
		return nil
	}
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(t)
	if err != nil {
		return err
	}
	e.bytes(num, b)
	return nil
}

func (e *encoder) msg(num protowire.Number, m Message) error {
	b, err := m.MarshalWire()
	if err != nil {
		return err
	}
	e.bytes(num, b)
	return nil
}

// field is one decoded tag/value pair. Varints land in x, length-delimited
// payloads in b.
type field struct {
	num protowire.Number
	typ protowire.Type
	x   uint64
	b   []byte
}

func (f field) str() string {
	if f.typ != protowire.BytesType {
		return ""
	}
	return string(f.b)
}

func (f field) boolean() bool {
	return f.typ == protowire.VarintType && protowire.DecodeBool(f.x)
}

func (f field) ts() (*timestamppb.Timestamp, error) {
	t := &timestamppb.Timestamp{}
	if f.typ != protowire.BytesType {
		return t, nil
	}
	if err := proto.Unmarshal(f.b, t); err != nil {
		return nil, err
	}
	return t, nil
}

// walk calls fn for each known-length field in data. Groups and fixed-width
// values are skipped.
func walk(data []byte, fn func(field) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.x, n = protowire.ConsumeVarint(data)
		case protowire.BytesType:
			f.b, n = protowire.ConsumeBytes(data)
		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		data = data[n:]

		if typ != protowire.VarintType && typ != protowire.BytesType {
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
