package renderer

// Unwind collects cleanups that run in reverse order unless discarded.
type Unwind []func()

func (u *Unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

func (u *Unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = (*u)[:0]
}

func (u *Unwind) Discard() {
	if len(*u) > 0 {
		*u = (*u)[:0]
	}
}
