package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/spacemeshos/bits/persistence"
	"github.com/spacemeshos/bits/processing"
	"github.com/spacemeshos/bits/shared"
)

// dumpConfig prints the packet structs themselves rather than their
// String summaries.
var dumpConfig = spew.ConfigState{Indent: "  ", DisableMethods: true}

type decodeFlags struct {
	file    string
	tree    bool
	dump    bool
	persist bool
}

func newDecodeCmd(a *app) *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode [hex...]",
		Short: "Decode transmissions and print their version sum and value",
		Long: `decode parses each transmission, one per argument or one per line of --file,
and prints the sum of all packet versions followed by the value of the expression.
Every line is processed; the command fails if any of them failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := inputLines(args, flags.file)
			if err != nil {
				return err
			}
			return a.decode(cmd.Context(), cmd.OutOrStdout(), lines, flags)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "Read transmissions from a file, one per line")
	cmd.Flags().BoolVar(&flags.tree, "tree", false, "Print the packet tree of each transmission")
	cmd.Flags().BoolVar(&flags.dump, "dump", false, "Dump the decoded packet structures")
	cmd.Flags().BoolVar(&flags.persist, "persist", false, "Store a report of each transmission in the datadir")
	return cmd
}

func inputLines(args []string, file string) ([]string, error) {
	lines := append([]string(nil), args...)
	if file != "" {
		fromFile, err := persistence.ReadLines(file)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fromFile...)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w; pass transmissions as arguments or with --file", shared.ErrEmptyInput)
	}
	return lines, nil
}

func (a *app) decode(ctx context.Context, out io.Writer, lines []string, flags *decodeFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := processing.NewProcessor(a.cfg, processing.WithLogger(a.logger))
	if err != nil {
		return err
	}
	batch, err := p.Process(ctx, lines)
	if err != nil {
		return err
	}

	for _, res := range batch.Results {
		printResult(out, res)

		if flags.tree && res.Parsed() {
			if err := res.Root.Format(out); err != nil {
				return err
			}
		}
		if flags.dump && res.Parsed() {
			dumpConfig.Fdump(out, res.Root)
		}
		if flags.persist {
			if err := persistence.PersistReport(a.cfg.DataDir, persistence.NewReport(res)); err != nil {
				return fmt.Errorf("failed to persist report of line %d: %w", res.Line, err)
			}
		}
	}
	fmt.Fprintf(out, "root: %x\n", batch.Root)

	if n := batch.Failed(); n > 0 {
		return fmt.Errorf("%d of %d transmissions failed", n, len(batch.Results))
	}
	return nil
}

func printResult(out io.Writer, res *processing.Result) {
	fmt.Fprintf(out, "%s\n", res.Input)
	sum, value := res.Answers()
	if sum != "" {
		fmt.Fprintf(out, "  version sum: %s\n", sum)
	}
	if value != "" {
		fmt.Fprintf(out, "  value: %s\n", value)
	}
	if res.Err != nil {
		fmt.Fprintf(out, "  error: %v\n", res.Err)
	}
	fmt.Fprintf(out, "  digest: %x\n", res.Digest)
}
