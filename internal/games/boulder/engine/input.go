package engine

import (
	"encoding/json"
	"fmt"
)

// Input is one buffered player command.
type Input uint8

const (
	InputWait Input = iota
	InputUp
	InputDown
	InputLeft
	InputRight
)

// String returns the wire name of the input.
func (in Input) String() string {
	switch in {
	case InputUp:
		return "UP"
	case InputDown:
		return "DOWN"
	case InputLeft:
		return "LEFT"
	case InputRight:
		return "RIGHT"
	default:
		return "WAIT"
	}
}

// Delta returns the (dx, dy) step for the input. WAIT is (0, 0).
func (in Input) Delta() (dx, dy int) {
	switch in {
	case InputUp:
		return 0, -1
	case InputDown:
		return 0, 1
	case InputLeft:
		return -1, 0
	case InputRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Valid reports whether in is one of the defined inputs.
func (in Input) Valid() bool {
	return in <= InputRight
}

// ParseInput maps a wire name to an input. Unknown names yield WAIT and
// ok=false; callers at the input boundary use the WAIT and move on.
func ParseInput(s string) (Input, bool) {
	switch s {
	case "WAIT":
		return InputWait, true
	case "UP":
		return InputUp, true
	case "DOWN":
		return InputDown, true
	case "LEFT":
		return InputLeft, true
	case "RIGHT":
		return InputRight, true
	default:
		return InputWait, false
	}
}

// MarshalJSON encodes the input as its wire name.
func (in Input) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.String())
}

// UnmarshalJSON decodes a wire name. Unknown names are rejected so a
// tampered history surfaces as a decode error instead of a silent WAIT.
func (in *Input) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("engine: input must be a string: %w", err)
	}
	parsed, ok := ParseInput(s)
	if !ok {
		return fmt.Errorf("engine: unknown input %q", s)
	}
	*in = parsed
	return nil
}
