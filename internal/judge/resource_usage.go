package judge

// ResourceUsage tracks the budget counters guarded by the session state
// machine. All fields are non-negative; current usage must stay
// component-wise <= the session's maximum after every accepted action.
type ResourceUsage struct {
	NumCaseGen             int
	NumCaseEval            int
	ExecutionTimeCaseEval  float64 // seconds
	NumCallPublicEval      int
	NumCallPrivateEval     int
}

// Add returns the component-wise sum of u and o.
func (u ResourceUsage) Add(o ResourceUsage) ResourceUsage {
	return ResourceUsage{
		NumCaseGen:            u.NumCaseGen + o.NumCaseGen,
		NumCaseEval:           u.NumCaseEval + o.NumCaseEval,
		ExecutionTimeCaseEval: u.ExecutionTimeCaseEval + o.ExecutionTimeCaseEval,
		NumCallPublicEval:     u.NumCallPublicEval + o.NumCallPublicEval,
		NumCallPrivateEval:    u.NumCallPrivateEval + o.NumCallPrivateEval,
	}
}

// Sub returns the component-wise difference of u and o.
func (u ResourceUsage) Sub(o ResourceUsage) ResourceUsage {
	return ResourceUsage{
		NumCaseGen:            u.NumCaseGen - o.NumCaseGen,
		NumCaseEval:           u.NumCaseEval - o.NumCaseEval,
		ExecutionTimeCaseEval: u.ExecutionTimeCaseEval - o.ExecutionTimeCaseEval,
		NumCallPublicEval:     u.NumCallPublicEval - o.NumCallPublicEval,
		NumCallPrivateEval:    u.NumCallPrivateEval - o.NumCallPrivateEval,
	}
}

// Field identifies a single ResourceUsage counter, used by the session's
// per-action guard table (spec.md §4.F).
type Field int

const (
	FieldNumCaseGen Field = iota
	FieldNumCaseEval
	FieldExecutionTimeCaseEval
	FieldNumCallPublicEval
	FieldNumCallPrivateEval
)

func (u ResourceUsage) get(f Field) float64 {
	switch f {
	case FieldNumCaseGen:
		return float64(u.NumCaseGen)
	case FieldNumCaseEval:
		return float64(u.NumCaseEval)
	case FieldExecutionTimeCaseEval:
		return u.ExecutionTimeCaseEval
	case FieldNumCallPublicEval:
		return float64(u.NumCallPublicEval)
	case FieldNumCallPrivateEval:
		return float64(u.NumCallPrivateEval)
	default:
		return 0
	}
}

// StrictlyBelow reports whether, for every field in fields, u is strictly
// less than max. Used for the pre-action guard.
func (u ResourceUsage) StrictlyBelow(max ResourceUsage, fields []Field) bool {
	for _, f := range fields {
		if u.get(f) >= max.get(f) {
			return false
		}
	}
	return true
}

// LessEqual reports whether, for every field in fields, u is <= max. Used
// for the post-action guard (equality permitted once, not exceeded).
func (u ResourceUsage) LessEqual(max ResourceUsage, fields []Field) bool {
	for _, f := range fields {
		if u.get(f) > max.get(f) {
			return false
		}
	}
	return true
}

// AllLessEqual reports whether u <= max component-wise across every field,
// used by the Session-wide invariant check (spec.md §8 invariant 1).
func (u ResourceUsage) AllLessEqual(max ResourceUsage) bool {
	all := []Field{FieldNumCaseGen, FieldNumCaseEval, FieldExecutionTimeCaseEval, FieldNumCallPublicEval, FieldNumCallPrivateEval}
	return u.LessEqual(max, all)
}
