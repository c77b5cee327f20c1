package countdown

// Resolution is the label diff for a single pull request.
type Resolution struct {
	Add    []string
	Remove []string

	// Prev is the lowest countdown index found on the pull request.
	Prev Index
	// Next is Prev moved one step toward the deadline, floored at 0.
	Next Index
}

// Changed reports whether applying the resolution mutates any label.
func (r Resolution) Changed() bool {
	return len(r.Add) > 0 || len(r.Remove) > 0
}

// Resolve computes which labels to add and remove so that a pull request
// carrying current advances one step along seq.
//
// Labels that are not part of seq are ignored. When several countdown labels
// are present the one closest to the deadline wins, and every countdown label
// other than the deadline label is removed. The deadline label itself is
// never removed. Remove is ordered by countdown position, so the result does
// not depend on the order of current.
func Resolve(current []string, seq Sequence) Resolution {
	var res Resolution

	found := make(map[int]bool)
	for _, name := range current {
		i, ok := seq.Index(name).Get()
		if !ok {
			continue
		}
		found[i] = true
		if prev, ok := res.Prev.Get(); !ok || i < prev {
			res.Prev = At(i)
		}
	}

	prev, ok := res.Prev.Get()
	if !ok {
		return res
	}

	for i := 1; i < seq.Len(); i++ {
		if found[i] {
			res.Remove = append(res.Remove, seq.Label(i))
		}
	}

	next := max(prev-1, 0)
	res.Next = At(next)
	if next != prev {
		res.Add = []string{seq.Label(next)}
	}

	return res
}
