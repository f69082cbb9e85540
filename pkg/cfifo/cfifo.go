// Package cfifo implements fixed-capacity circular byte FIFOs that can be
// cascaded into one logical queue.
//
// A Fifo never allocates: the caller hands it a backing slice with Config and
// keeps ownership of that memory. A Fifo configured without backing storage
// ("phantom") rejects every push but, once marked full, pops its dummy byte.
//
// Thread safety: none. Every exported operation is a complete critical
// section from the caller's point of view; wrap each call in one exclusive
// lock owned by the calling layer (see pkg/fifohost). No operation needs more
// than one lock at a time, cascade walks included.
package cfifo

// Fifo is the control state of one circular byte buffer.
//
// The zero value is unusable; call Init first. Config may be called any
// number of times and always leaves the buffer in the full state.
type Fifo struct {
	prev *Fifo
	next *Fifo

	buf   []byte
	size  uint16
	used  uint16
	rdPtr uint16
	wrPtr uint16

	dummy byte
}

// Init resets the fifo to a known default: no neighbors, dummy byte zero,
// no backing storage. After Init the fifo reports both empty and full.
func (f *Fifo) Init() {
	f.prev = nil
	f.next = nil
	f.dummy = 0
	f.Config(nil, 0)
}

// Config assigns backing storage to the fifo and marks it full, so a
// prefilled buffer can be drained immediately. Call Clear to start empty
// instead.
//
// A nil buf leaves the fifo unconfigured; size is still honored, which
// together with SetFull allows popping the dummy byte size times.
func (f *Fifo) Config(buf []byte, size uint16) {
	f.buf = buf
	f.size = size
	f.SetFull()
}

// SetDummyByte sets the byte returned by Pop when no storage is configured.
func (f *Fifo) SetDummyByte(b byte) {
	f.dummy = b
}

// Push stores one byte. It reports false, without changing any state, when
// the fifo has no backing storage or no free space.
func (f *Fifo) Push(b byte) bool {
	if f.buf == nil {
		return false
	}
	if f.IsFull() {
		return false
	}
	f.buf[f.wrPtr] = b
	f.wrPtr = (f.wrPtr + 1) % f.size
	f.used++
	return true
}

// Pop removes and returns the oldest byte. It reports false when the fifo is
// empty. Without backing storage the dummy byte is returned; the read index
// and usage count advance either way, so phantom content drains like real
// content.
func (f *Fifo) Pop() (byte, bool) {
	if f.IsEmpty() {
		return 0, false
	}
	b := f.dummy
	if f.buf != nil {
		b = f.buf[f.rdPtr]
	}
	// used > 0 implies size > 0, so the modulo is safe
	f.rdPtr = (f.rdPtr + 1) % f.size
	f.used--
	return b, true
}

// Clear drops all stored data. Buffer content is left untouched.
func (f *Fifo) Clear() {
	f.rdPtr = 0
	f.wrPtr = 0
	f.used = 0
}

// SetFull marks every slot as used without writing anything, for buffers the
// caller prefilled out of band.
func (f *Fifo) SetFull() {
	f.rdPtr = 0
	f.wrPtr = 0
	f.used = f.size
}

// Size returns the configured capacity in bytes.
func (f *Fifo) Size() uint16 {
	return f.size
}

// Usage returns the number of bytes currently stored.
func (f *Fifo) Usage() uint16 {
	return f.used
}

// IsEmpty reports whether no data is stored.
func (f *Fifo) IsEmpty() bool {
	return f.used == 0
}

// IsFull reports whether no free slot remains. An unconfigured fifo
// (capacity 0) is both empty and full; cascade pushes skip it while pops
// never find data in it unless it was marked full explicitly.
func (f *Fifo) IsFull() bool {
	return f.used >= f.size
}
