// Package bloodtype models the eight ABO/Rh blood groups and the fixed
// donor-compatibility table used to match donors with SOS requests.
package bloodtype

import (
	"errors"
	"strings"
)

// Type is one of the eight ABO/Rh blood groups, e.g. "AB+".
type Type string

const (
	APos  Type = "A+"
	ANeg  Type = "A-"
	BPos  Type = "B+"
	BNeg  Type = "B-"
	ABPos Type = "AB+"
	ABNeg Type = "AB-"
	OPos  Type = "O+"
	ONeg  Type = "O-"
)

var ErrUnknown = errors.New("unknown blood type")

var all = []Type{APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg}

// donors maps a requested type to the donor types allowed to respond.
var donors = map[Type][]Type{
	APos:  {APos, ANeg, OPos, ONeg},
	ANeg:  {ANeg, ONeg},
	BPos:  {BPos, BNeg, OPos, ONeg},
	BNeg:  {BNeg, ONeg},
	ABPos: {APos, ANeg, BPos, BNeg, ABPos, ABNeg, OPos, ONeg},
	ABNeg: {ANeg, BNeg, ABNeg, ONeg},
	OPos:  {OPos, ONeg},
	ONeg:  {ONeg},
}

// All returns the eight types in display order.
func All() []Type {
	return append([]Type(nil), all...)
}

// Parse normalizes s and returns the matching Type.
func Parse(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrUnknown
	}
	return t, nil
}

func (t Type) Valid() bool {
	_, ok := donors[t]
	return ok
}

func (t Type) String() string { return string(t) }

// Donors returns the donor types that may respond to a request for requested.
// Unknown types yield nil.
func Donors(requested Type) []Type {
	d, ok := donors[requested]
	if !ok {
		return nil
	}
	return append([]Type(nil), d...)
}

// CanDonate reports whether a donor of type donor may respond to a request
// for requested.
func CanDonate(requested, donor Type) bool {
	for _, d := range donors[requested] {
		if d == donor {
			return true
		}
	}
	return false
}

// Recipients returns the requested types a donor of type donor can serve,
// in display order.
func Recipients(donor Type) []Type {
	var out []Type
	for _, r := range all {
		if CanDonate(r, donor) {
			out = append(out, r)
		}
	}
	return out
}
