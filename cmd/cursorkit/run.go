package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/cursorkit/internal/app"
	"github.com/dshills/cursorkit/internal/dispatcher/chain"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/dispatcher/handlers/jump"
	"github.com/dshills/cursorkit/internal/engine"
	"github.com/dshills/cursorkit/internal/engine/cursor"
	"github.com/dshills/cursorkit/internal/input"
)

// errCommandFailed is returned after the report of a failed run has
// been printed.
var errCommandFailed = errors.New("command failed")

type runFlags struct {
	selections string
	visible    string
	chainJSON  string
	command    string
	argsJSON   string
	jumps      []string
	diff       bool
	stats      bool
	compact    bool
	write      bool
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a command or chain against a file",
		Long: `Load FILE, set the selections, run one command or a chain of commands and
print a JSON report of the result.

Selections are comma separated; "3:7" selects from anchor 3 to head 7,
a bare "10" is a cursor. --jump answers a pending ace jump with a label
and may be repeated.

Examples:
  cursorkit run main.go --select 0:120 --command cursors_from_selection_soft
  cursorkit run list.txt --chain '[["cursors_from_comma_list"], ["ace_jump_word"]]' --jump s
  cursorkit run main.go --select 42 --command delete_to_soft_begin --diff`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(cmd, v, args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.selections, "select", "s", "", "initial selections, e.g. 3:7,10")
	flags.StringVar(&f.visible, "visible", "", "visible lines FIRST:LAST")
	flags.StringVar(&f.chainJSON, "chain", "", "JSON list of commands to run")
	flags.StringVarP(&f.command, "command", "x", "", "command to run")
	flags.StringVar(&f.argsJSON, "args", "", "JSON object of arguments for --command")
	flags.StringArrayVarP(&f.jumps, "jump", "j", nil, "label answering a pending jump (repeatable)")
	flags.BoolVar(&f.diff, "diff", false, "include a patch of the changes")
	flags.BoolVar(&f.stats, "stats", false, "include per-command dispatch counts")
	flags.BoolVar(&f.compact, "compact", false, "print the report on one line")
	flags.BoolVarP(&f.write, "write", "w", false, "write the changed text back to FILE")
	cmd.MarkFlagsMutuallyExclusive("chain", "command")
	cmd.MarkFlagsOneRequired("chain", "command")
	return cmd
}

func runFile(cmd *cobra.Command, v *viper.Viper, path string, f runFlags) error {
	var (
		opts []engine.Option
		sels []cursor.Selection
	)
	if f.selections != "" {
		var err error
		if sels, err = parseSelections(f.selections); err != nil {
			return err
		}
	}
	if f.visible != "" {
		first, last, err := parseSpan(f.visible)
		if err != nil {
			return fmt.Errorf("--visible: %w", err)
		}
		opts = append(opts, engine.WithVisibleLines(first, last))
	}

	application, err := openApp(cmd, v)
	if err != nil {
		return err
	}
	defer application.Close()

	doc, err := application.Open(path, opts...)
	if err != nil {
		return err
	}
	if f.selections != "" {
		if err := doc.Engine.SetSelections(sels); err != nil {
			return fmt.Errorf("--select: %w", err)
		}
	}

	var result handler.Result
	if f.chainJSON != "" {
		specs, err := chain.ParseJSON(f.chainJSON)
		if err != nil {
			return fmt.Errorf("--chain: %w", err)
		}
		result = application.RunChain(doc, specs)
	} else {
		args, err := chain.ParseArgsJSON(f.argsJSON)
		if err != nil {
			return fmt.Errorf("--args: %w", err)
		}
		action := input.NewAction(f.command).WithArgs(args).WithSource(input.SourceCLI)
		result = application.Dispatch(doc, action)
	}

	for _, label := range f.jumps {
		if result.IsError() {
			break
		}
		action := input.NewAction(jump.ActionResolveJump).
			WithArgs(input.Args{jump.ArgLabel: label}).
			WithSource(input.SourceCLI)
		result = application.Dispatch(doc, action)
	}

	report, err := application.Report(doc, result, app.ReportOptions{Diff: f.diff, Stats: f.stats, Pretty: !f.compact})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := out.Write(report); err != nil {
		return err
	}
	if f.compact {
		fmt.Fprintln(out)
	}

	if result.IsError() {
		return fmt.Errorf("%w: %v", errCommandFailed, result.Error)
	}
	if f.write && doc.Modified() {
		if err := os.WriteFile(path, []byte(doc.Engine.Export()), 0o644); err != nil {
			return app.NewOperationError("write", path, err)
		}
	}
	return nil
}

// parseSelections reads "3:7,10" into a selection 3→7 and a cursor at 10.
func parseSelections(s string) ([]cursor.Selection, error) {
	var sels []cursor.Selection
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		anchorStr, headStr, isRange := strings.Cut(item, ":")
		anchor, err := strconv.ParseInt(anchorStr, 10, 64)
		if err != nil || anchor < 0 {
			return nil, fmt.Errorf("--select %q: bad offset %q", s, anchorStr)
		}
		head := anchor
		if isRange {
			head, err = strconv.ParseInt(headStr, 10, 64)
			if err != nil || head < 0 {
				return nil, fmt.Errorf("--select %q: bad offset %q", s, headStr)
			}
		}
		sels = append(sels, cursor.NewSelection(cursor.ByteOffset(anchor), cursor.ByteOffset(head)))
	}
	return sels, nil
}

// parseSpan reads "FIRST:LAST" line numbers.
func parseSpan(s string) (uint32, uint32, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("want FIRST:LAST, got %q", s)
	}
	first, err := strconv.ParseUint(a, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad line %q", a)
	}
	last, err := strconv.ParseUint(b, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad line %q", b)
	}
	return uint32(first), uint32(last), nil
}
