/*
 * um32 - Command-line frontend
 *
 * One positional argument: the path to the program image. -h/--help
 * prints usage and exits non-zero. -v/--verbose raises log detail.
 * -i/--interactive drops into the operator monitor instead of running
 * the image to completion.
 */

package main

import (
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/brandonto/um32/internal/ioport"
	"github.com/brandonto/um32/internal/machine"
	"github.com/brandonto/um32/internal/monitor"
	"github.com/brandonto/um32/util/logger"
)

func main() {
	optHelp := getopt.BoolLong("help", 'h', "Display this help")
	optVerbose := getopt.BoolLong("verbose", 'v', "Enable verbose logging")
	optInteractive := getopt.BoolLong("interactive", 'i', "Drop into the operator monitor after loading")
	getopt.SetParameters("FILE")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(1)
	}

	rest := getopt.Args()
	if len(rest) != 1 {
		getopt.Usage()
		os.Exit(1)
	}
	programPath := rest[0]

	level := slog.LevelInfo
	if *optVerbose {
		level = slog.LevelDebug
	}
	handler := logger.New(os.Stderr, &slog.HandlerOptions{Level: level}, *optVerbose)
	log := slog.New(handler)
	slog.SetDefault(log)

	f, err := os.Open(programPath)
	if err != nil {
		log.Error("unable to open program file", "path", programPath, "err", err)
		os.Exit(2)
	}
	defer f.Close()

	io := ioport.NewStdio(os.Stdin, os.Stdout)
	m := machine.New(io, io)
	if err := m.LoadProgram(f); err != nil {
		log.Error("unable to load program", "err", err)
		os.Exit(3)
	}

	if *optInteractive {
		monitor.Run(m)
		return
	}

	if err := m.Run(); err != nil {
		log.Error("fatal runtime trap", "err", err)
		os.Exit(4)
	}
}
