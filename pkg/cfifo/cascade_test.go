package cfifo_test

import (
	"testing"

	"github.com/PurriKissa/m-cfifo/pkg/cfifo"
)

// newChain configures n fifos of the given capacities, links them in order,
// and clears the whole chain.
func newChain(capacities ...uint16) []*cfifo.Fifo {
	chain := make([]*cfifo.Fifo, len(capacities))
	for i, c := range capacities {
		f := &cfifo.Fifo{}
		f.Init()
		f.Config(make([]byte, c), c)
		chain[i] = f
		if i > 0 {
			chain[i-1].Cascade(f)
		}
	}
	chain[0].ClearAll(cfifo.Up)
	return chain
}

func TestCascade_PushAnyDistribution(t *testing.T) {
	chain := newChain(2, 2, 2)

	for i := 0; i < 6; i++ {
		if !chain[0].PushAny(byte(i)) {
			t.Fatalf("expect push %d to succeed", i)
		}
	}
	if chain[0].PushAny(0xFF) {
		t.Fatalf("expect 7th push to fail with all fifos full")
	}
	for i, f := range chain {
		if f.Usage() != 2 {
			t.Fatalf("expect fifo %d usage 2 but got %d", i, f.Usage())
		}
	}
}

func TestCascade_EndToEnd(t *testing.T) {
	a := &cfifo.Fifo{}
	b := &cfifo.Fifo{}
	a.Init()
	b.Init()
	a.Config(make([]byte, 4), 4)
	b.Config(make([]byte, 4), 4)
	a.Cascade(b)
	a.ClearAll(cfifo.Up)

	for i := byte(1); i <= 6; i++ {
		if !a.PushAny(i) {
			t.Fatalf("expect push %d to succeed", i)
		}
	}
	if a.Usage() != 4 {
		t.Fatalf("expect first fifo usage 4 but got %d", a.Usage())
	}
	if b.Usage() != 2 {
		t.Fatalf("expect second fifo usage 2 but got %d", b.Usage())
	}

	if !a.PushAny(7) || !a.PushAny(8) {
		t.Fatalf("expect pushes 7 and 8 to fill the chain")
	}
	if a.PushAny(9) {
		t.Fatalf("expect 9th push to fail")
	}

	for want := byte(1); want <= 8; want++ {
		got, ok := a.PopAny()
		if !ok {
			t.Fatalf("expect pop %d to succeed", want)
		}
		if got != want {
			t.Fatalf("expect pop %d but got %d", want, got)
		}
	}
	if _, ok := a.PopAny(); ok {
		t.Fatalf("expect pop to fail on a drained chain")
	}
}

func TestCascade_SkipsUnconfigured(t *testing.T) {
	a := &cfifo.Fifo{}
	phantom := &cfifo.Fifo{}
	c := &cfifo.Fifo{}
	a.Init()
	phantom.Init()
	c.Init()
	a.Config(make([]byte, 2), 2)
	phantom.Config(nil, 2)
	c.Config(make([]byte, 2), 2)
	a.Cascade(phantom)
	phantom.Cascade(c)
	a.ClearAll(cfifo.Up)

	// phantom rejects pushes, so bytes flow a -> c
	for i := byte(1); i <= 4; i++ {
		if !a.PushAny(i) {
			t.Fatalf("expect push %d to succeed", i)
		}
	}
	if a.PushAny(5) {
		t.Fatalf("expect push to fail with only the phantom left")
	}
	if c.Usage() != 2 {
		t.Fatalf("expect third fifo usage 2 but got %d", c.Usage())
	}

	// an empty phantom never satisfies a pop
	for want := byte(1); want <= 4; want++ {
		got, ok := a.PopAny()
		if !ok || got != want {
			t.Fatalf("expect pop %d but got %d, %v", want, got, ok)
		}
	}

	// marked full, the phantom yields its dummy byte
	phantom.SetDummyByte(0xEE)
	phantom.SetFull()
	for i := 0; i < 2; i++ {
		got, ok := a.PopAny()
		if !ok || got != 0xEE {
			t.Fatalf("expect dummy pop 0xEE but got %#x, %v", got, ok)
		}
	}
	if _, ok := a.PopAny(); ok {
		t.Fatalf("expect pop to fail once the phantom is drained")
	}
}

func TestCascade_DirectionalClearAndSetFull(t *testing.T) {
	chain := newChain(3, 3, 3)
	chain[0].SetFullAll(cfifo.Up)

	// clear downward from the middle: fifos 0 and 1 empty, 2 untouched
	chain[1].ClearAll(cfifo.Down)
	if chain[0].Usage() != 0 || chain[1].Usage() != 0 {
		t.Fatalf("expect fifos 0 and 1 cleared but got %d and %d", chain[0].Usage(), chain[1].Usage())
	}
	if chain[2].Usage() != 3 {
		t.Fatalf("expect fifo 2 untouched but got usage %d", chain[2].Usage())
	}

	// set full upward from the middle: fifos 1 and 2 full, 0 untouched
	chain[1].SetFullAll(cfifo.Up)
	if chain[0].Usage() != 0 {
		t.Fatalf("expect fifo 0 untouched but got usage %d", chain[0].Usage())
	}
	if chain[1].Usage() != 3 || chain[2].Usage() != 3 {
		t.Fatalf("expect fifos 1 and 2 full but got %d and %d", chain[1].Usage(), chain[2].Usage())
	}
}

func TestCascade_Aggregates(t *testing.T) {
	chain := newChain(4, 8, 16)

	if got := chain[0].TotalSize(); got != 28 {
		t.Fatalf("expect total size 28 but got %d", got)
	}
	if !chain[0].AllEmpty() {
		t.Fatalf("expect AllEmpty is true but got false")
	}
	if chain[0].AllFull() {
		t.Fatalf("expect AllFull is false but got true")
	}

	chain[0].PushAny(1)
	chain[0].PushAny(2)
	if got := chain[0].TotalUsage(); got != 2 {
		t.Fatalf("expect total usage 2 but got %d", got)
	}
	if chain[0].AllEmpty() {
		t.Fatalf("expect AllEmpty is false but got true")
	}

	chain[0].SetFullAll(cfifo.Up)
	if !chain[0].AllFull() {
		t.Fatalf("expect AllFull is true but got false")
	}
	if got := chain[0].TotalUsage(); got != 28 {
		t.Fatalf("expect total usage 28 but got %d", got)
	}

	// aggregates from mid-chain only see the forward part
	if got := chain[1].TotalSize(); got != 24 {
		t.Fatalf("expect total size 24 from fifo 1 but got %d", got)
	}
}

func TestCascade_SingleAndNilStart(t *testing.T) {
	solo := &cfifo.Fifo{}
	solo.Init()
	solo.Config(make([]byte, 4), 4)
	solo.Clear()

	// an unlinked fifo degrades to its own state
	if got := solo.TotalSize(); got != 4 {
		t.Fatalf("expect total size 4 but got %d", got)
	}
	if !solo.AllEmpty() {
		t.Fatalf("expect AllEmpty is true but got false")
	}
	if !solo.PushAny(1) {
		t.Fatalf("expect PushAny to succeed on an unlinked fifo")
	}
	if got, ok := solo.PopAny(); !ok || got != 1 {
		t.Fatalf("expect PopAny 1 but got %d, %v", got, ok)
	}

	// a nil start must not fault
	var none *cfifo.Fifo
	if none.PushAny(1) {
		t.Fatalf("expect PushAny to fail on a nil start")
	}
	if _, ok := none.PopAny(); ok {
		t.Fatalf("expect PopAny to fail on a nil start")
	}
	if got := none.TotalSize(); got != 0 {
		t.Fatalf("expect total size 0 on a nil start but got %d", got)
	}
	if got := none.TotalUsage(); got != 0 {
		t.Fatalf("expect total usage 0 on a nil start but got %d", got)
	}
	if !none.AllEmpty() {
		t.Fatalf("expect AllEmpty is vacuously true on a nil start")
	}
	if !none.AllFull() {
		t.Fatalf("expect AllFull is vacuously true on a nil start")
	}
	none.ClearAll(cfifo.Up)
	none.SetFullAll(cfifo.Down)
}
