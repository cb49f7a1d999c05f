package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/bits/persistence"
	"github.com/spacemeshos/bits/shared"
)

func newShowCmd(a *app) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "show [DIGEST]",
		Short: "Print a persisted report",
		Long: `show prints the report stored by "decode --persist", looked up either by the
hex digest printed by decode or by the transmission itself with --message.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var digest []byte
			switch {
			case message != "" && len(args) == 0:
				digest = shared.Digest(message)
			case message == "" && len(args) == 1:
				var err error
				digest, err = hex.DecodeString(args[0])
				if err != nil || len(digest) != shared.DigestSize {
					return fmt.Errorf("invalid digest %q; expected: %d hex encoded bytes", args[0], shared.DigestSize)
				}
			default:
				return fmt.Errorf("expected either a digest or --message")
			}

			report, err := persistence.FetchReport(a.cfg.DataDir, digest)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", report.Input)
			if report.Parsed {
				fmt.Fprintf(out, "  version sum: %d\n", report.VersionSum)
			}
			if report.Value != "" {
				fmt.Fprintf(out, "  value: %s\n", report.Value)
			}
			if report.Error != "" {
				fmt.Fprintf(out, "  error: %s\n", report.Error)
			}
			fmt.Fprintf(out, "  digest: %x\n", report.Digest)
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Look up the report of this transmission")
	return cmd
}
