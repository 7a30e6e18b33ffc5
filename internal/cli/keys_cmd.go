package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stackfield/agentstudio/credential"
	"github.com/stackfield/agentstudio/provider"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show credential status for each provider",
		Long: "Keys reports, for each supported provider, the environment " +
			"variable consulted and whether a credential is currently available. " +
			"Key values are never printed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := credential.NewResolver()
			for _, p := range provider.Providers() {
				status := resolver.Status(p)
				marker := "✗"
				if status != credential.StatusMissing {
					marker = "✓"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %-10s %-20s %s\n", marker, string(p), credential.EnvVar(p), status)
			}
			return nil
		},
	}
}
