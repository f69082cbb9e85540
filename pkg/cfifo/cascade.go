package cfifo

// Direction selects which neighbor a cascade walk follows.
type Direction int

const (
	Up   Direction = iota // follow next
	Down                  // follow prev
)

// Cascade links next after f, so cascade pushes overflow into it and cascade
// pops drain it after f runs dry. No validation is performed: keeping the
// chain acyclic, and re-homing whatever next.prev pointed to before, is the
// caller's job. Buffer contents are not touched.
func (f *Fifo) Cascade(next *Fifo) {
	f.next = next
	next.prev = f
}

// adjacent returns the neighbor in the given direction, or nil.
func (f *Fifo) adjacent(dir Direction) *Fifo {
	if f == nil {
		return nil
	}
	if dir == Up {
		return f.next
	}
	return f.prev
}

// PushAny pushes b into the first fifo with free space, walking the chain
// from f toward next. It reports false when every fifo in the chain was full
// or unconfigured.
func (f *Fifo) PushAny(b byte) bool {
	for cur := f; cur != nil; cur = cur.next {
		if cur.Push(b) {
			return true
		}
	}
	return false
}

// PopAny pops from the first fifo holding data, walking the chain from f
// toward next. It reports false when every fifo in the chain was empty.
func (f *Fifo) PopAny() (byte, bool) {
	for cur := f; cur != nil; cur = cur.next {
		if b, ok := cur.Pop(); ok {
			return b, true
		}
	}
	return 0, false
}

// ClearAll clears f and every fifo reachable from it in the given direction.
func (f *Fifo) ClearAll(dir Direction) {
	for cur := f; cur != nil; cur = cur.adjacent(dir) {
		cur.Clear()
	}
}

// SetFullAll marks f and every fifo reachable from it in the given direction
// as full.
func (f *Fifo) SetFullAll(dir Direction) {
	for cur := f; cur != nil; cur = cur.adjacent(dir) {
		cur.SetFull()
	}
}

// TotalSize sums the capacities of f and every fifo after it, widened so a
// long chain of large buffers cannot overflow the per-fifo size type.
func (f *Fifo) TotalSize() uint32 {
	var total uint32
	for cur := f; cur != nil; cur = cur.next {
		total += uint32(cur.Size())
	}
	return total
}

// TotalUsage sums the stored byte counts of f and every fifo after it.
func (f *Fifo) TotalUsage() uint32 {
	var total uint32
	for cur := f; cur != nil; cur = cur.next {
		total += uint32(cur.Usage())
	}
	return total
}

// AllEmpty reports whether f and every fifo after it are empty. A nil start
// is vacuously empty.
func (f *Fifo) AllEmpty() bool {
	for cur := f; cur != nil; cur = cur.next {
		if !cur.IsEmpty() {
			return false
		}
	}
	return true
}

// AllFull reports whether f and every fifo after it are full. A nil start is
// vacuously full.
func (f *Fifo) AllFull() bool {
	for cur := f; cur != nil; cur = cur.next {
		if !cur.IsFull() {
			return false
		}
	}
	return true
}
