package countdown

import "strconv"

// Index is an optional position within a Sequence. The zero value is absent.
type Index struct {
	value int
	ok    bool
}

// At returns a present Index for position i.
func At(i int) Index {
	return Index{value: i, ok: true}
}

// Get returns the position and whether it is present.
func (i Index) Get() (int, bool) {
	return i.value, i.ok
}

// Present reports whether the index holds a position.
func (i Index) Present() bool {
	return i.ok
}

// Ptr returns a pointer to the position, or nil when absent.
// Useful for serializing with omitempty.
func (i Index) Ptr() *int {
	if !i.ok {
		return nil
	}
	v := i.value
	return &v
}

func (i Index) String() string {
	if !i.ok {
		return "-"
	}
	return strconv.Itoa(i.value)
}
