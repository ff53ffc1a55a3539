// Command lox is the CLI front end described in spec §6: no args starts
// a REPL, one positional PATH argument runs a file, and anything else is
// a usage error. Argument parsing and exit-code mapping are the
// Non-goal's "external collaborators" (§1); this package is that
// collaborator, built on spf13/cobra the way opal-lang-opal's
// cmd/devcmd is.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/347online/lox/host"
	"github.com/347online/lox/internal/version"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		debug        bool
		watch        bool
		emitBytecode string
		dumpBytecode string
	)

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	h := host.New(os.Stdout, os.Stderr, log)

	cmd := &cobra.Command{
		Use:           "lox [path]",
		Short:         "A tree-walking interpreter for the Lox language.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				log.SetLevel(logrus.DebugLevel)
			}

			if dumpBytecode != "" {
				out, err := h.DumpBytecode(dumpBytecode)
				if err != nil {
					return err
				}
				fmt.Fprint(os.Stdout, out)
				return nil
			}

			if len(args) == 0 {
				return h.REPL(context.Background())
			}

			path := args[0]
			if emitBytecode != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				return h.EmitBytecode(string(data), emitBytecode)
			}
			if watch {
				return h.RunFileWatch(path)
			}

			code := h.RunFile(path)
			if code != host.ExitOK {
				os.Exit(code)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug-level trace logging")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run the file whenever it changes on disk")
	cmd.Flags().StringVar(&emitBytecode, "emit-bytecode", "", "compile PATH's expression/print statements to a cached bytecode chunk")
	cmd.Flags().StringVar(&dumpBytecode, "dump-bytecode", "", "disassemble a previously emitted bytecode chunk")
	cmd.Version = version.Version
	cmd.SetVersionTemplate(version.String() + "\n")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, suggest(err, cmd))
		return host.ExitUsage
	}
	return host.ExitOK
}

// suggest appends a "did you mean" hint for an unknown flag, fuzzy-
// matched against the command's own registered flags — a CLI-level
// affordance only; it never touches the fixed runtime/resolution
// diagnostic strings the pipeline itself reports (§4.4/§7).
func suggest(err error, cmd *cobra.Command) string {
	msg := err.Error()
	unknown, ok := strings.CutPrefix(msg, "unknown flag: ")
	if !ok {
		return msg
	}
	var names []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) { names = append(names, "--"+f.Name) })
	best := fuzzy.RankFindFold(unknown, names)
	if len(best) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (did you mean %q?)", msg, best[0].Target)
}
