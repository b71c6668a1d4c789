/*
 * um32 - Monitor command table
 *
 * Commands are matched by unambiguous prefix against a minimum match
 * length, the same scheme a mainframe operator console uses so "st"
 * can mean "step" without typing it in full, so long as no other
 * command shares that prefix down to its minimum.
 */

package monitor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/brandonto/um32/internal/machine"
)

type cmdLine struct {
	line string
	pos  int
}

func (c *cmdLine) isEOL() bool {
	return c.pos >= len(c.line)
}

func (c *cmdLine) skipSpace() {
	for !c.isEOL() && c.line[c.pos] == ' ' {
		c.pos++
	}
}

func (c *cmdLine) getWord() string {
	c.skipSpace()
	start := c.pos
	for !c.isEOL() && c.line[c.pos] != ' ' {
		c.pos++
	}
	return c.line[start:c.pos]
}

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *machine.Machine) (quit bool, err error)
}

var cmdList = []cmd{
	{name: "run", min: 1, process: cmdRun},
	{name: "step", min: 2, process: cmdStep},
	{name: "regs", min: 1, process: cmdRegs},
	{name: "show", min: 2, process: cmdShow},
	{name: "quit", min: 1, process: cmdQuit},
}

func matchCommand(c cmd, name string) bool {
	if len(name) == 0 || len(name) > len(c.name) {
		return false
	}
	if name != c.name[:len(name)] {
		return false
	}
	return len(name) >= c.min
}

func matchList(name string) []cmd {
	var matches []cmd
	for _, c := range cmdList {
		if matchCommand(c, name) {
			matches = append(matches, c)
		}
	}
	return matches
}

// processCommand parses and dispatches one line of monitor input.
func processCommand(line string, m *machine.Machine) (bool, error) {
	cl := &cmdLine{line: line}
	name := cl.getWord()
	if name == "" {
		return false, nil
	}

	matches := matchList(name)
	switch len(matches) {
	case 0:
		return false, fmt.Errorf("command not found: %s", name)
	case 1:
		return matches[0].process(cl, m)
	default:
		return false, fmt.Errorf("ambiguous command: %s", name)
	}
}

func completeCmd(partial string) []string {
	cl := &cmdLine{line: partial}
	name := cl.getWord()
	matches := matchList(name)
	out := make([]string, len(matches))
	for i, c := range matches {
		out[i] = c.name
	}
	return out
}

func cmdRun(_ *cmdLine, m *machine.Machine) (bool, error) {
	if err := m.Run(); err != nil {
		return false, err
	}
	fmt.Printf("halted at finger=%d\n", m.Finger)
	return false, nil
}

func cmdStep(cl *cmdLine, m *machine.Machine) (bool, error) {
	n := 1
	if word := cl.getWord(); word != "" {
		v, err := strconv.Atoi(word)
		if err != nil || v < 1 {
			return false, errors.New("step count must be a positive integer")
		}
		n = v
	}
	for i := 0; i < n; i++ {
		state, err := m.Step()
		if err != nil {
			return false, err
		}
		fmt.Printf("finger=%d state=%s\n", m.Finger, state)
		if state == machine.Halted {
			break
		}
	}
	return false, nil
}

func cmdRegs(_ *cmdLine, m *machine.Machine) (bool, error) {
	for i, r := range m.Regs {
		fmt.Printf("R%d=%#010x ", i, r)
	}
	fmt.Println()
	return false, nil
}

func cmdShow(cl *cmdLine, m *machine.Machine) (bool, error) {
	idWord := cl.getWord()
	offWord := cl.getWord()
	if idWord == "" || offWord == "" {
		return false, errors.New("usage: show <id> <offset>")
	}
	id, err := strconv.ParseUint(idWord, 0, 32)
	if err != nil {
		return false, fmt.Errorf("bad id %q: %w", idWord, err)
	}
	off, err := strconv.ParseUint(offWord, 0, 32)
	if err != nil {
		return false, fmt.Errorf("bad offset %q: %w", offWord, err)
	}
	v, err := m.Heap.Read(uint32(id), uint32(off))
	if err != nil {
		return false, err
	}
	fmt.Printf("heap[%d][%d] = %#010x\n", id, off, v)
	return false, nil
}

func cmdQuit(_ *cmdLine, _ *machine.Machine) (bool, error) {
	return true, nil
}
