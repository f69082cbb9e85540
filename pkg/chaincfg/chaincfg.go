package chaincfg

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

/*
 * These structs only represent the contents of a chain config file. The
 * runtime fifo instances are built from them by the host layer.
 *
 * File format, one directive per line, '#' starts a comment:
 *
 *   fifo <name> <capacity> [phantom]
 *   dummy <name> <byte>
 *   chain <name> <name> [<name> ...]
 *
 * A phantom fifo gets no backing storage: pushes always fail and pops return
 * its dummy byte once it is marked full. A fifo may appear in at most one
 * chain position, which keeps every chain a simple acyclic list.
 */

type FifoConfig struct {
	Name     string
	Capacity uint16
	Phantom  bool
	Dummy    byte
}

type ChainConfig struct {
	Fifos  []FifoConfig
	Chains [][]string
}

type ParseFunc func(int, string, *ChainConfig) error

var parseCommands = map[string]ParseFunc{
	"fifo":  parseFifo,
	"dummy": parseDummy,
	"chain": parseChain,
}

func parseFifo(ln int, line string, config *ChainConfig) error {
	tokens := strings.Fields(line)

	format := "fifo <name> <capacity> [phantom]"
	if len(tokens) != 3 && len(tokens) != 4 {
		return newErrString(ln, "fifo directive must have format:  %s", format)
	}

	name := tokens[1]
	if config.findFifo(name) != nil {
		return newErrString(ln, "Duplicate fifo name %s", name)
	}

	capacity, err := strconv.ParseUint(tokens[2], 10, 16)
	if err != nil {
		return newErrString(ln, "Invalid capacity %s (must fit in 16 bits)", tokens[2])
	}

	phantom := false
	if len(tokens) == 4 {
		if tokens[3] != "phantom" {
			return newErrString(ln, "fifo directive must have format:  %s", format)
		}
		phantom = true
	}

	config.Fifos = append(config.Fifos, FifoConfig{
		Name:     name,
		Capacity: uint16(capacity),
		Phantom:  phantom,
	})
	return nil
}

func parseDummy(ln int, line string, config *ChainConfig) error {
	tokens := strings.Fields(line)

	if len(tokens) != 3 {
		return newErrString(ln, "dummy directive must have format:  dummy <name> <byte>")
	}

	fc := config.findFifo(tokens[1])
	if fc == nil {
		return newErrString(ln, "Unknown fifo %s in dummy directive", tokens[1])
	}

	b, err := strconv.ParseUint(tokens[2], 0, 8)
	if err != nil {
		return newErrString(ln, "Invalid dummy byte %s (must be 0-255)", tokens[2])
	}

	fc.Dummy = byte(b)
	return nil
}

func parseChain(ln int, line string, config *ChainConfig) error {
	tokens := strings.Fields(line)

	if len(tokens) < 3 {
		return newErrString(ln, "chain directive must have format:  chain <name> <name> [<name> ...]")
	}

	names := tokens[1:]
	for _, name := range names {
		if config.findFifo(name) == nil {
			return newErrString(ln, "Unknown fifo %s in chain directive", name)
		}
		if config.isChained(name) {
			return newErrString(ln, "Fifo %s already belongs to a chain", name)
		}
	}
	// reject a name used twice within this directive as well
	for i, name := range names {
		for _, other := range names[i+1:] {
			if name == other {
				return newErrString(ln, "Fifo %s listed twice in chain directive", name)
			}
		}
	}

	config.Chains = append(config.Chains, names)
	return nil
}

func (c *ChainConfig) findFifo(name string) *FifoConfig {
	for i := range c.Fifos {
		if c.Fifos[i].Name == name {
			return &c.Fifos[i]
		}
	}
	return nil
}

func (c *ChainConfig) isChained(name string) bool {
	for _, chain := range c.Chains {
		for _, n := range chain {
			if n == name {
				return true
			}
		}
	}
	return false
}

func newErrString(line int, msg string, args ...any) error {
	_msg := fmt.Sprintf(msg, args...)
	return errors.Errorf("Parse error on line %d:  %s", line, _msg)
}

func newErr(line int, err error) error {
	return errors.Errorf("Parse error on line %d:  %s", line, err.Error())
}

// Parse a chain configuration file
func ParseConfig(configFile string) (*ChainConfig, error) {
	fd, err := os.Open(configFile)
	if err != nil {
		return nil, errors.New("Unable to open file")
	}
	defer fd.Close()

	config := &ChainConfig{
		Fifos:  make([]FifoConfig, 0, 1),
		Chains: make([][]string, 0, 1),
	}

	scanner := bufio.NewScanner(fd)
	ln := 0
	for scanner.Scan() {
		ln++

		line := scanner.Text()
		tokens := strings.Fields(line)

		if len(tokens) == 0 {
			continue
		}

		// Skip comments
		head := tokens[0]
		if head[0] == '#' {
			continue
		}

		pf, found := parseCommands[head]
		if !found {
			return nil, newErrString(ln, "Unrecognized token %s", head)
		}
		err = pf(ln, line, config)
		if err != nil {
			return nil, newErr(ln, err)
		}
	}

	return config, nil
}
