// Package countdown resolves D-day label transitions for pull requests.
//
// A countdown is an ordered list of label names. Index 0 is the deadline
// label ("D0"); higher indices mean more days remaining. Each run moves a pull
// request one step closer to index 0 and never past it.
package countdown

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyLabel is returned when a countdown contains a blank label name.
	ErrEmptyLabel = errors.New("countdown label name is empty")

	// ErrDuplicateLabel is returned when a label name appears more than once.
	ErrDuplicateLabel = errors.New("countdown label name is duplicated")
)

// Sequence is an immutable, ordered list of countdown label names.
// The zero value is an empty sequence.
type Sequence struct {
	labels []string
	index  map[string]int
}

// NewSequence builds a sequence from label names, deadline label first.
func NewSequence(labels ...string) (Sequence, error) {
	seq := Sequence{
		labels: make([]string, 0, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	for i, name := range labels {
		if name == "" {
			return Sequence{}, fmt.Errorf("position %d: %w", i, ErrEmptyLabel)
		}
		if prev, ok := seq.index[name]; ok {
			return Sequence{}, fmt.Errorf("%q at positions %d and %d: %w", name, prev, i, ErrDuplicateLabel)
		}
		seq.index[name] = i
		seq.labels = append(seq.labels, name)
	}
	return seq, nil
}

// ParseSequence parses a comma-separated list such as "D0,D1,D2".
// Surrounding whitespace is trimmed from each name. An empty or blank
// string yields an empty sequence.
func ParseSequence(s string) (Sequence, error) {
	if strings.TrimSpace(s) == "" {
		return Sequence{}, nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return NewSequence(parts...)
}

// Len returns the number of labels in the sequence.
func (s Sequence) Len() int {
	return len(s.labels)
}

// Index returns the position of name, or an absent Index if name is not a
// countdown label.
func (s Sequence) Index(name string) Index {
	i, ok := s.index[name]
	if !ok {
		return Index{}
	}
	return At(i)
}

// Label returns the label name at i. It panics if i is out of range.
func (s Sequence) Label(i int) string {
	return s.labels[i]
}

// Labels returns a copy of the label names in countdown order.
func (s Sequence) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// String returns the sequence in the same comma-separated form ParseSequence accepts.
func (s Sequence) String() string {
	return strings.Join(s.labels, ",")
}
