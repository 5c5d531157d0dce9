package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/colorfulnotion/sigmacodec/sigmaerrors"
)

// RegisterID names a box register. R0 to R3 hold the mandatory box fields
// (value, script, tokens, creation info); R4 to R9 are optional.
type RegisterID uint8

const (
	R0 RegisterID = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
)

const (
	FirstAdditionalRegister = R4
	LastAdditionalRegister  = R9
	MaxAdditionalRegisters  = int(LastAdditionalRegister-FirstAdditionalRegister) + 1
)

func (id RegisterID) String() string {
	return "R" + strconv.Itoa(int(id))
}

// IsAdditional reports whether id is one of the optional registers.
func (id RegisterID) IsAdditional() bool {
	return id >= FirstAdditionalRegister && id <= LastAdditionalRegister
}

// ParseRegisterID accepts "R4".."R9" (case-insensitive) and the mandatory ids.
func ParseRegisterID(s string) (RegisterID, error) {
	if len(s) != 2 || (s[0] != 'R' && s[0] != 'r') || s[1] < '0' || s[1] > '9' {
		return 0, fmt.Errorf("invalid register id %q", s)
	}
	return RegisterID(s[1] - '0'), nil
}

// Registers holds the populated optional registers densely, in id order
// starting at R4.
type Registers struct {
	values []Constant
}

// NewRegisters validates a register assignment. Every id must be optional and
// the ids must form an unbroken run from R4.
func NewRegisters(m map[RegisterID]Constant) (Registers, error) {
	if len(m) > MaxAdditionalRegisters {
		return Registers{}, fmt.Errorf("%w: %d registers, at most %d", sigmaerrors.ErrMalformedRegisters, len(m), MaxAdditionalRegisters)
	}
	values := make([]Constant, 0, len(m))
	for i := 0; i < len(m); i++ {
		id := FirstAdditionalRegister + RegisterID(i)
		c, ok := m[id]
		if !ok {
			return Registers{}, fmt.Errorf("%w: %s is empty, set registers are %s", sigmaerrors.ErrMalformedRegisters, id, describeIDs(m))
		}
		if c.IsZero() {
			return Registers{}, fmt.Errorf("%w: %s holds an empty constant", sigmaerrors.ErrMalformedRegisters, id)
		}
		values = append(values, c)
	}
	return Registers{values: values}, nil
}

// RegistersFromSlice assigns cs to R4, R5, ... in order.
func RegistersFromSlice(cs []Constant) (Registers, error) {
	if len(cs) > MaxAdditionalRegisters {
		return Registers{}, fmt.Errorf("%w: %d registers, at most %d", sigmaerrors.ErrMalformedRegisters, len(cs), MaxAdditionalRegisters)
	}
	values := make([]Constant, len(cs))
	for i, c := range cs {
		if c.IsZero() {
			return Registers{}, fmt.Errorf("%w: %s holds an empty constant", sigmaerrors.ErrMalformedRegisters, FirstAdditionalRegister+RegisterID(i))
		}
		values[i] = c
	}
	return Registers{values: values}, nil
}

func describeIDs(m map[RegisterID]Constant) string {
	ids := make([]string, 0, len(m))
	for i := 0; i < 256; i++ {
		if _, ok := m[RegisterID(i)]; ok {
			ids = append(ids, RegisterID(i).String())
		}
	}
	return strings.Join(ids, ",")
}

func (r Registers) Len() int {
	return len(r.values)
}

func (r Registers) Get(id RegisterID) (Constant, bool) {
	if !id.IsAdditional() {
		return Constant{}, false
	}
	i := int(id - FirstAdditionalRegister)
	if i >= len(r.values) {
		return Constant{}, false
	}
	return r.values[i], true
}

// Values returns the populated registers in id order.
func (r Registers) Values() []Constant {
	out := make([]Constant, len(r.values))
	copy(out, r.values)
	return out
}

func (r Registers) Map() map[RegisterID]Constant {
	m := make(map[RegisterID]Constant, len(r.values))
	for i, c := range r.values {
		m[FirstAdditionalRegister+RegisterID(i)] = c
	}
	return m
}

func (r Registers) Equal(o Registers) bool {
	if len(r.values) != len(o.values) {
		return false
	}
	for i := range r.values {
		if !r.values[i].Equal(o.values[i]) {
			return false
		}
	}
	return true
}
