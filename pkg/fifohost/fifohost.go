// Package fifohost owns a set of cfifo chains built from a chain config and
// provides the mutual exclusion the core deliberately leaves out: every
// exported method is one lock-acquire/release critical section around a
// single cfifo operation.
package fifohost

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/PurriKissa/m-cfifo/pkg/cfifo"
	"github.com/PurriKissa/m-cfifo/pkg/chaincfg"
	"github.com/pkg/errors"
)

var logger = log.New(os.Stdout, "", log.Ldate|log.Ltime|log.Lshortfile)

type Host struct {
	mu sync.Mutex // guards every fifo below; the fifos themselves are lock-free

	fifos map[string]*cfifo.Fifo
	names []string // declaration order, for listing

	heads []*cfifo.Fifo // first fifo of each chain, plus unchained fifos
}

func New(config *chaincfg.ChainConfig) (*Host, error) {
	if len(config.Fifos) == 0 {
		return nil, errors.New("config declares no fifos")
	}

	h := &Host{
		fifos: make(map[string]*cfifo.Fifo, len(config.Fifos)),
		names: make([]string, 0, len(config.Fifos)),
	}

	for _, fc := range config.Fifos {
		f := &cfifo.Fifo{}
		f.Init()
		if fc.Phantom {
			f.Config(nil, fc.Capacity)
		} else {
			f.Config(make([]byte, fc.Capacity), fc.Capacity)
		}
		f.SetDummyByte(fc.Dummy)
		h.fifos[fc.Name] = f
		h.names = append(h.names, fc.Name)
	}

	chained := make(map[string]bool)
	for _, chain := range config.Chains {
		for i := 1; i < len(chain); i++ {
			h.fifos[chain[i-1]].Cascade(h.fifos[chain[i]])
		}
		for _, name := range chain {
			chained[name] = true
		}
		h.heads = append(h.heads, h.fifos[chain[0]])
		logger.Printf("Linked chain %v\n", chain)
	}
	for _, name := range h.names {
		if !chained[name] {
			h.heads = append(h.heads, h.fifos[name])
		}
	}

	// Config leaves every fifo full; start the demo from empty queues
	for _, head := range h.heads {
		head.ClearAll(cfifo.Up)
	}

	logger.Printf("Host ready with %d fifos in %d chains\n", len(h.fifos), len(config.Chains))
	return h, nil
}

func (h *Host) lookup(name string) (*cfifo.Fifo, error) {
	f, ok := h.fifos[name]
	if !ok {
		return nil, errors.Errorf("unknown fifo %s", name)
	}
	return f, nil
}

// Push stores b in the first chain with free space.
func (h *Host) Push(b byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, head := range h.heads {
		if head.PushAny(b) {
			return true
		}
	}
	return false
}

// Pop drains the oldest byte of the first chain holding data.
func (h *Host) Pop() (byte, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, head := range h.heads {
		if b, ok := head.PopAny(); ok {
			return b, true
		}
	}
	return 0, false
}

// PushTo pushes into one named fifo only, without cascading.
func (h *Host) PushTo(name string, b byte) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	f, err := h.lookup(name)
	if err != nil {
		return false, err
	}
	return f.Push(b), nil
}

// PopFrom pops from one named fifo only, without cascading.
func (h *Host) PopFrom(name string) (byte, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	f, err := h.lookup(name)
	if err != nil {
		return 0, false, err
	}
	b, ok := f.Pop()
	return b, ok, nil
}

// Clear empties one named fifo.
func (h *Host) Clear(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	f, err := h.lookup(name)
	if err != nil {
		return err
	}
	f.Clear()
	return nil
}

// ClearChain empties the named fifo and its neighbors in the given direction.
func (h *Host) ClearChain(name string, dir cfifo.Direction) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	f, err := h.lookup(name)
	if err != nil {
		return err
	}
	f.ClearAll(dir)
	return nil
}

// SetFull marks one named fifo as full.
func (h *Host) SetFull(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	f, err := h.lookup(name)
	if err != nil {
		return err
	}
	f.SetFull()
	return nil
}

// SetFullChain marks the named fifo and its neighbors in the given direction
// as full.
func (h *Host) SetFullChain(name string, dir cfifo.Direction) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	f, err := h.lookup(name)
	if err != nil {
		return err
	}
	f.SetFullAll(dir)
	return nil
}

// SetDummy sets the dummy byte of one named fifo.
func (h *Host) SetDummy(name string, b byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	f, err := h.lookup(name)
	if err != nil {
		return err
	}
	f.SetDummyByte(b)
	return nil
}

// Status returns one formatted line per fifo in declaration order.
func (h *Host) Status() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	lines := make([]string, 0, len(h.names))
	for _, name := range h.names {
		f := h.fifos[name]
		lines = append(lines, fmt.Sprintf("%s\t%d\t%d\t%v\t%v\n",
			name, f.Size(), f.Usage(), f.IsEmpty(), f.IsFull()))
	}
	return lines
}

// Totals aggregates size and usage over every chain, and reports whether all
// fifos are empty and whether all are full.
func (h *Host) Totals() (size uint32, usage uint32, allEmpty bool, allFull bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	allEmpty = true
	allFull = true
	for _, head := range h.heads {
		size += head.TotalSize()
		usage += head.TotalUsage()
		allEmpty = allEmpty && head.AllEmpty()
		allFull = allFull && head.AllFull()
	}
	return size, usage, allEmpty, allFull
}
