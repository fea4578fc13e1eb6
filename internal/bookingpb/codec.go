package bookingpb

import "fmt"

// Codec marshals Message values. It keeps the "proto" name so standard
// clients negotiate it without extra content-subtype settings; install it
// with grpc.ForceServerCodec rather than registering it globally.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("bookingpb: cannot marshal %T", v)
	}
	return m.MarshalWire()
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("bookingpb: cannot unmarshal into %T", v)
	}
	return m.UnmarshalWire(data)
}

func (Codec) Name() string { return "proto" }
