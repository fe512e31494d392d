package gameshare

import (
	"encoding/json"
	"fmt"
)

// Mode selects how a declaration builds its lookup key.
type Mode int

const (
	// ModeImplicit uses the member's declared type as the key.
	ModeImplicit Mode = iota

	// ModeMainType uses an explicit main type as the key. The resolved value
	// must still be assignable to the member.
	ModeMainType

	// ModeMainSubType uses the compound of a main type and a sub key.
	ModeMainSubType
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeImplicit:
		return "Implicit"
	case ModeMainType:
		return "MainType"
	case ModeMainSubType:
		return "MainSubType"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// IsValid checks if the mode is one of the known values.
func (m Mode) IsValid() bool {
	return m >= ModeImplicit && m <= ModeMainSubType
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Implicit", "implicit":
		*m = ModeImplicit
	case "MainType", "mainType", "main-type":
		*m = ModeMainType
	case "MainSubType", "mainSubType", "main-sub-type":
		*m = ModeMainSubType
	default:
		return ArgumentError{Argument: "mode", Reason: fmt.Sprintf("unknown mode %q", string(text))}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	return m.UnmarshalText([]byte(s))
}
