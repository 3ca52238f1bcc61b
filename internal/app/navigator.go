package app

// navigator tracks which question is currently displayed. Moves outside the
// valid index space are ignored rather than signalled: navigation inputs are
// expected to only offer valid targets, and the boundaries never wrap.
type navigator struct {
	current int
	count   int
}

func newNavigator(count int) *navigator {
	return &navigator{count: count}
}

// goTo jumps to index and reports whether the position changed.
func (n *navigator) goTo(index int) bool {
	if index < 0 || index >= n.count || index == n.current {
		return false
	}
	n.current = index
	return true
}

func (n *navigator) next() bool {
	return n.goTo(n.current + 1)
}

func (n *navigator) prev() bool {
	return n.goTo(n.current - 1)
}
