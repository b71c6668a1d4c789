/*
 * um32 - Operator monitor
 *
 * A local, non-networked REPL for driving an already-loaded Machine
 * one command at a time: run to completion, single-step, inspect
 * registers, peek a heap cell. Not a debugger protocol: there is no
 * wire format and nothing is persisted. Modeled on the line-edited
 * prompt and prefix-matched command table of a mainframe operator
 * console, generalized to UM-32's much smaller command set.
 */

package monitor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/peterh/liner"

	"github.com/brandonto/um32/internal/machine"
)

// Run starts the interactive monitor loop against m. It returns when the
// user issues "quit" or aborts the prompt (Ctrl-D/Ctrl-C).
func Run(m *machine.Machine) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		return completeCmd(partial)
	})

	for {
		command, err := line.Prompt("um32> ")
		if err == nil {
			line.AppendHistory(command)
			quit, procErr := processCommand(command, m)
			if procErr != nil {
				fmt.Println("error: " + procErr.Error())
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		slog.Error("monitor: error reading line", "err", err)
		return
	}
}
