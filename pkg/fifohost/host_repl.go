package fifohost

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PurriKissa/m-cfifo/pkg/cfifo"
	"github.com/PurriKissa/m-cfifo/pkg/repl"
)

func HostRepl(host *Host) *repl.REPL {
	r := repl.NewRepl()
	r.AddCommand("ls", lsHandler(host), "Prints every fifo with size and usage. usage: ls")
	r.AddCommand("push", pushHandler(host), "Pushes bytes into the first chain with space. usage: push <byte> [<byte> ...]")
	r.AddCommand("pop", popHandler(host), "Pops bytes from the first chain with data. usage: pop [count]")
	r.AddCommand("push1", push1Handler(host), "Pushes one byte into a single fifo. usage: push1 <name> <byte>")
	r.AddCommand("pop1", pop1Handler(host), "Pops one byte from a single fifo. usage: pop1 <name>")
	r.AddCommand("clear", clearHandler(host), "Clears a fifo, or its chain in a direction. usage: clear <name> [up|down]")
	r.AddCommand("setfull", setfullHandler(host), "Marks a fifo full, or its chain in a direction. usage: setfull <name> [up|down]")
	r.AddCommand("dummy", dummyHandler(host), "Sets the dummy byte of a fifo. usage: dummy <name> <byte>")
	r.AddCommand("total", totalHandler(host), "Prints aggregate size/usage over all chains. usage: total")
	return r
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte value %s", s)
	}
	return byte(v), nil
}

func parseDirection(s string) (cfifo.Direction, error) {
	switch s {
	case "up":
		return cfifo.Up, nil
	case "down":
		return cfifo.Down, nil
	default:
		return cfifo.Up, fmt.Errorf("invalid direction %s (want up or down)", s)
	}
}

func lsHandler(host *Host) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Split(input, " ")
		if len(args) != 1 {
			return fmt.Errorf("usage: ls")
		}
		if _, err := io.WriteString(config.Writer, "Name\tSize\tUsage\tEmpty\tFull\n"); err != nil {
			return fmt.Errorf("lsHandler cannot write the header to stdout")
		}
		for _, line := range host.Status() {
			if _, err := io.WriteString(config.Writer, line); err != nil {
				return fmt.Errorf("lsHandler cannot write fifo status to stdout")
			}
		}
		return nil
	}
}

func pushHandler(host *Host) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Split(input, " ")
		if len(args) < 2 {
			return fmt.Errorf("usage: push <byte> [<byte> ...]")
		}
		for _, arg := range args[1:] {
			b, err := parseByte(arg)
			if err != nil {
				return err
			}
			if !host.Push(b) {
				return fmt.Errorf("all fifos full, dropped %d", b)
			}
		}
		io.WriteString(config.Writer, fmt.Sprintf("Pushed %d byte(s)\n", len(args)-1))
		return nil
	}
}

func popHandler(host *Host) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Split(input, " ")
		if len(args) > 2 {
			return fmt.Errorf("usage: pop [count]")
		}
		count := 1
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid count %s", args[1])
			}
			count = n
		}
		for i := 0; i < count; i++ {
			b, ok := host.Pop()
			if !ok {
				io.WriteString(config.Writer, fmt.Sprintf("Empty after %d byte(s)\n", i))
				return nil
			}
			io.WriteString(config.Writer, fmt.Sprintf("%d\n", b))
		}
		return nil
	}
}

func push1Handler(host *Host) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Split(input, " ")
		if len(args) != 3 {
			return fmt.Errorf("usage: push1 <name> <byte>")
		}
		b, err := parseByte(args[2])
		if err != nil {
			return err
		}
		ok, err := host.PushTo(args[1], b)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("fifo %s is full or has no storage", args[1])
		}
		return nil
	}
}

func pop1Handler(host *Host) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Split(input, " ")
		if len(args) != 2 {
			return fmt.Errorf("usage: pop1 <name>")
		}
		b, ok, err := host.PopFrom(args[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("fifo %s is empty", args[1])
		}
		io.WriteString(config.Writer, fmt.Sprintf("%d\n", b))
		return nil
	}
}

func clearHandler(host *Host) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Split(input, " ")
		switch len(args) {
		case 2:
			return host.Clear(args[1])
		case 3:
			dir, err := parseDirection(args[2])
			if err != nil {
				return err
			}
			return host.ClearChain(args[1], dir)
		default:
			return fmt.Errorf("usage: clear <name> [up|down]")
		}
	}
}

func setfullHandler(host *Host) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Split(input, " ")
		switch len(args) {
		case 2:
			return host.SetFull(args[1])
		case 3:
			dir, err := parseDirection(args[2])
			if err != nil {
				return err
			}
			return host.SetFullChain(args[1], dir)
		default:
			return fmt.Errorf("usage: setfull <name> [up|down]")
		}
	}
}

func dummyHandler(host *Host) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Split(input, " ")
		if len(args) != 3 {
			return fmt.Errorf("usage: dummy <name> <byte>")
		}
		b, err := parseByte(args[2])
		if err != nil {
			return err
		}
		return host.SetDummy(args[1], b)
	}
}

func totalHandler(host *Host) func(string, *repl.REPLConfig) error {
	return func(input string, config *repl.REPLConfig) error {
		args := strings.Split(input, " ")
		if len(args) != 1 {
			return fmt.Errorf("usage: total")
		}
		size, usage, allEmpty, allFull := host.Totals()
		io.WriteString(config.Writer, fmt.Sprintf("Size: %d\tUsage: %d\tAllEmpty: %v\tAllFull: %v\n",
			size, usage, allEmpty, allFull))
		return nil
	}
}
