// SPDX-License-Identifier: MIT

package ring

// Ternary is the outcome of an undecidable predicate.
// The zero value is Unknown so that an unset answer never claims certainty.
type Ternary int8

const (
	// Unknown means the predicate could not be decided.
	Unknown Ternary = iota
	// True means the predicate provably holds.
	True
	// False means the predicate provably fails.
	False
)

// Of lifts a decided boolean into a Ternary.
func Of(b bool) Ternary {
	if b {
		return True
	}

	return False
}

// IsTrue reports whether t is a proof that the predicate holds.
func (t Ternary) IsTrue() bool { return t == True }

// IsFalse reports whether t is a proof that the predicate fails.
func (t Ternary) IsFalse() bool { return t == False }

// Known reports whether t carries a decision.
func (t Ternary) Known() bool { return t != Unknown }

// Not flips a decided answer; Unknown stays Unknown.
func (t Ternary) Not() Ternary {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// And is Kleene conjunction: False dominates, then Unknown.
func (t Ternary) And(o Ternary) Ternary {
	if t == False || o == False {
		return False
	}
	if t == Unknown || o == Unknown {
		return Unknown
	}

	return True
}

// Or is Kleene disjunction: True dominates, then Unknown.
func (t Ternary) Or(o Ternary) Ternary {
	if t == True || o == True {
		return True
	}
	if t == Unknown || o == Unknown {
		return Unknown
	}

	return False
}

// String renders the value the way logs and reports print it.
func (t Ternary) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}
