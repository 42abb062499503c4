package fleet

import "fmt"

// Fallback is the default fallback status label. Any persisted or submitted
// status outside the current set is coerced to the configured fallback.
const Fallback = "Unassigned"

// DefaultStatuses is the status set of the current iteration.
var DefaultStatuses = []string{
	"Unassigned",
	"Charging",
	"Ready for Walk up",
	"Being used by Guest",
	"Out of Service",
	"Returned",
	"Reserved for Pick-Up",
	"Other",
}

// StatusSet is a closed set of recognized status labels plus one designated
// fallback. Validation is lenient by design: Normalize never fails, it
// substitutes the fallback for anything it does not recognize.
type StatusSet struct {
	values   []string
	index    map[string]struct{}
	fallback string
}

// NewStatusSet builds a status set from the given labels and fallback.
// The fallback is added to the set if it is not already listed, so the
// set invariant (stored status is always a member) holds after coercion.
func NewStatusSet(values []string, fallback string) (*StatusSet, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("status set must not be empty")
	}
	if fallback == "" {
		return nil, fmt.Errorf("fallback status must not be empty")
	}

	s := &StatusSet{
		fallback: fallback,
		index:    make(map[string]struct{}, len(values)+1),
	}
	for _, v := range values {
		if v == "" {
			return nil, fmt.Errorf("status label must not be empty")
		}
		if _, dup := s.index[v]; dup {
			return nil, fmt.Errorf("duplicate status label %q", v)
		}
		s.index[v] = struct{}{}
		s.values = append(s.values, v)
	}
	if _, ok := s.index[fallback]; !ok {
		s.index[fallback] = struct{}{}
		s.values = append(s.values, fallback)
	}

	return s, nil
}

// Contains reports whether v is a member of the set.
func (s *StatusSet) Contains(v string) bool {
	_, ok := s.index[v]
	return ok
}

// Normalize returns v if it is a member of the set, otherwise the fallback.
// An empty or unrecognized status is not an error (ValidationLeniency).
func (s *StatusSet) Normalize(v string) string {
	if s.Contains(v) {
		return v
	}
	return s.fallback
}

// Fallback returns the designated fallback status.
func (s *StatusSet) Fallback() string {
	return s.fallback
}

// Values returns the status labels in declaration order.
func (s *StatusSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}
