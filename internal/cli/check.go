package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/forPelevin/ytshorts/internal/config"
	"github.com/forPelevin/ytshorts/internal/deps"
)

func newCheckCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report whether the external tools are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, _, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			if cfg.Tools.Transcriber == "whispercpp" {
				statuses = append(statuses, deps.CheckFile("whisper.cpp model", cfg.Tools.WhisperCppModel, "ggml model file"))
			}

			rows := make([][]string, 0, len(statuses))
			for _, s := range statuses {
				state := "ok"
				if !s.Available {
					state = "missing"
					if s.Optional {
						state = "missing (optional)"
					}
				}
				rows = append(rows, []string{s.Name, s.Command, state, s.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Tool", "Command", "Status", "Detail"}, rows))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("missing dependencies: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
