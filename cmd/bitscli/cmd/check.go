package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/bits/persistence"
	"github.com/spacemeshos/bits/processing"
	"github.com/spacemeshos/bits/validation"
)

func newCheckCmd(a *app) *cobra.Command {
	var input, answers string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Decode a transmission and compare it against recorded answers",
		Long: `check decodes the single transmission held in --input and compares its
version sum and value against the first and second line of --answers.
An empty answer line is not checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := persistence.ReadLines(input)
			if err != nil {
				return err
			}
			if len(lines) != 1 {
				return fmt.Errorf("input file %s; expected: 1 transmission, given: %d", input, len(lines))
			}

			exp, err := validation.ReadExpected(answers)
			if err != nil {
				return err
			}

			res := processing.Decode(lines[0], a.cfg)
			printResult(cmd.OutOrStdout(), res)
			if err := validation.Validate(res, exp); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "File holding the transmission (required)")
	cmd.Flags().StringVar(&answers, "answers", "", "File holding the expected version sum and value (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}
