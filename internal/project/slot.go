package project

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SlotState is the state of an integration slot.
type SlotState int

const (
	// SlotAbsent means the caller did not mention the integration.
	SlotAbsent SlotState = iota
	// SlotDisabled means the caller explicitly turned the integration off.
	SlotDisabled
	// SlotEnabled means the integration runs with its defaults.
	SlotEnabled
	// SlotConfigured means the integration runs with caller supplied options.
	SlotConfigured
)

func (s SlotState) String() string {
	switch s {
	case SlotAbsent:
		return "absent"
	case SlotDisabled:
		return "disabled"
	case SlotEnabled:
		return "enabled"
	case SlotConfigured:
		return "configured"
	default:
		return fmt.Sprintf("SlotState(%d)", int(s))
	}
}

// Slot holds the per-integration request. On the wire it is either a boolean
// or an options object; an absent slot is omitted.
type Slot[T any] struct {
	State   SlotState
	Options T
}

// Enabled returns a slot that runs the integration with defaults.
func Enabled[T any]() Slot[T] {
	return Slot[T]{State: SlotEnabled}
}

// Disabled returns an explicitly disabled slot.
func Disabled[T any]() Slot[T] {
	return Slot[T]{State: SlotDisabled}
}

// Configured returns a slot carrying options.
func Configured[T any](opts T) Slot[T] {
	return Slot[T]{State: SlotConfigured, Options: opts}
}

// Active reports whether the integration should run. Integrations that are
// on by default pass defaultOn and only stay off when explicitly disabled.
func (s Slot[T]) Active(defaultOn bool) bool {
	switch s.State {
	case SlotEnabled, SlotConfigured:
		return true
	case SlotAbsent:
		return defaultOn
	default:
		return false
	}
}

// IsZero lets `omitzero` drop absent slots.
func (s Slot[T]) IsZero() bool {
	return s.State == SlotAbsent
}

func (s Slot[T]) MarshalJSON() ([]byte, error) {
	switch s.State {
	case SlotConfigured:
		return json.Marshal(s.Options)
	case SlotEnabled:
		return []byte("true"), nil
	case SlotDisabled:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (s *Slot[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*s = Slot[T]{}
		return nil
	case bytes.Equal(trimmed, []byte("true")):
		*s = Slot[T]{State: SlotEnabled}
		return nil
	case bytes.Equal(trimmed, []byte("false")):
		*s = Slot[T]{State: SlotDisabled}
		return nil
	}

	var opts T
	if err := json.Unmarshal(trimmed, &opts); err != nil {
		return fmt.Errorf("integration options must be a boolean or an object: %w", err)
	}
	*s = Slot[T]{State: SlotConfigured, Options: opts}
	return nil
}
