package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/diegok/gridiron/internal/app"
	"github.com/diegok/gridiron/internal/config"
)

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if errors.Cause(err) == flag.ErrHelp {
		printUsage()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	application := app.NewApp(cfg, os.Stdout)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  gridiron [options]                  Solve a pass and watch it on the field")
	fmt.Fprintln(os.Stderr, "  gridiron --scenario <file.yaml>     Load the throw from a scenario file")
	fmt.Fprintln(os.Stderr, "  gridiron --replay <file>            Replay a recorded play")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --qb-x, --qb-y <yards>      Thrower spot (default: 20, 26)")
	fmt.Fprintln(os.Stderr, "  --release-height <yards>    Release height (default: 2.97)")
	fmt.Fprintln(os.Stderr, "  --wr-x, --wr-y <yards>      Receiver spot (default: 40, 26)")
	fmt.Fprintln(os.Stderr, "  --wr-z <yards>              Receiver catch height (default: 2.97)")
	fmt.Fprintln(os.Stderr, "  --wr-vx, --wr-vy <yd/s>     Receiver running velocity (default: 3, 0)")
	fmt.Fprintln(os.Stderr, "  --speed <yd/s>              Ball speed (default: 17.08)")
	fmt.Fprintln(os.Stderr, "  --heading <mode>            target or downfield (default: target)")
	fmt.Fprintln(os.Stderr, "  --dt <seconds>              Simulation step (default: 0.01)")
	fmt.Fprintln(os.Stderr, "  --catch-radius <yards>      Catch distance (default: 1)")
	fmt.Fprintln(os.Stderr, "  --workers <n>               Solver goroutines (default: 1)")
	fmt.Fprintln(os.Stderr, "  --record <file>             Save the play for --replay")
	fmt.Fprintln(os.Stderr, "  --text                      Print a text report instead of the field view")
	fmt.Fprintln(os.Stderr, "  --mute                      Disable sound")
	fmt.Fprintln(os.Stderr, "  --log-level <level>         debug, info, warn, error (default: info)")
	fmt.Fprintln(os.Stderr, "  --log-file <file>           Write logs to a file")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  gridiron --wr-x 45 --wr-vx 6 --speed 22")
	fmt.Fprintln(os.Stderr, "  gridiron --heading downfield --text")
	fmt.Fprintln(os.Stderr, "  gridiron --record deep.gob && gridiron --replay deep.gob")
}
