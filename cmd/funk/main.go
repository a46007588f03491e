// Command funk is the reference command-line entry point for the funk
// runtime: spec.md §6's "external collaborator" CLI, built the way
// kristofer/smog's cmd/smog builds its own entry point, but on
// github.com/urfave/cli/v2 instead of a hand-rolled os.Args switch.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/funk-lang/funk/internal/dump"
	"github.com/funk-lang/funk/pkg/bytecode"
	"github.com/funk-lang/funk/pkg/object"
	"github.com/funk-lang/funk/pkg/stdlib"
	"github.com/funk-lang/funk/pkg/vm"
)

func main() {
	app := &cli.App{
		Name:  "funk",
		Usage: "a function-oriented, Roman-numeral scripting runtime",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "print a runtime state dump on every error"},
		},
		// Bare `funk` with no subcommand: print usage and exit 0, the
		// exact behavior spec.md §6 requires of the one-argument CLI
		// form when invoked without a file.
		Action: func(c *cli.Context) error {
			if c.Args().Len() > 0 {
				return runFile(c.Args().First(), c.Bool("debug"))
			}
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "compile and run a funk source file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() < 1 {
						return cli.Exit("run: expected a file argument", 1)
					}
					return runFile(c.Args().First(), c.Bool("debug"))
				},
			},
			{
				Name:  "repl",
				Usage: "start an interactive read-eval-print loop",
				Action: func(c *cli.Context) error {
					return runRepl(c.Bool("debug"))
				},
			},
			{
				Name:      "disasm",
				Usage:     "compile a file and print its bytecode listing",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() < 1 {
						return cli.Exit("disasm: expected a file argument", 1)
					}
					return disasmFile(c.Args().First())
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newVM builds a VM with the standard library installed and an error
// callback that prints the funk call-stack trace before the message,
// mirroring main.c's run_file: funk_open_std(vm) before funk_run_file,
// and print_error's funk_print_stack_trace-then-message ordering.
func newVM(debug bool) *vm.VM {
	machine := vm.New()
	stdlib.Install(machine, nil)

	d := dump.New(os.Stderr)
	machine.SetErrorHandler(func(message string) {
		for _, frame := range machine.StackTrace() {
			fmt.Fprintf(os.Stderr, "  at %s\n", frame)
		}
		fmt.Fprintln(os.Stderr, message)
		if debug {
			d.Value("vm state", machine)
		}
	})

	return machine
}

func runFile(path string, debug bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	machine := newVM(debug)
	defer machine.Close()

	machine.RunString(path, string(source))
	return nil
}

func runRepl(debug bool) error {
	machine := newVM(debug)
	defer machine.Close()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("funk repl — Ctrl-D to exit")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		machine.RunString("repl", line)
	}
}

func disasmFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	machine := vm.New()
	defer machine.Close()

	fn, ok := machine.Compile(path, string(source))
	if !ok {
		return cli.Exit("disasm: compilation failed", 1)
	}

	names := make([]string, len(fn.Constants))
	for i, c := range fn.Constants {
		names[i] = object.ToString(c)
	}
	listing := bytecode.Disassemble(fn.Code, func(idx uint16) string {
		if int(idx) < len(names) {
			return names[idx]
		}
		return "?"
	})
	fmt.Print(listing)
	return nil
}
