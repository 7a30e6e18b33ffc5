package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stackfield/agentstudio/catalog"
	"github.com/stackfield/agentstudio/credential"
	"github.com/stackfield/agentstudio/provider"
	"github.com/stackfield/agentstudio/provider/anthropic"
	"github.com/stackfield/agentstudio/provider/gemini"
	"github.com/stackfield/agentstudio/provider/grok"
	"github.com/stackfield/agentstudio/provider/openai"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect, validate and normalize agent catalogs",
	}

	cmd.AddCommand(newCatalogListCmd())
	cmd.AddCommand(newCatalogValidateCmd())
	cmd.AddCommand(newCatalogExportCmd())
	cmd.AddCommand(newCatalogNormalizeCmd())
	return cmd
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the effective agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			for _, def := range ws.BaseCatalog().Definitions() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-24s %-36s model=%s max_tokens=%d\n", def.ID, def.Name, def.Model, def.MaxTokens)
			}
			return nil
		},
	}
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate an agents.yaml document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			c, err := catalog.Parse(raw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid, %d agent(s)\n", args[0], c.Len())
			for _, id := range c.IDs() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", id)
			}
			return nil
		},
	}
}

func newCatalogExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the effective catalog as agents.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			data, err := catalog.Marshal(ws.BaseCatalog())
			if err != nil {
				return err
			}
			if outPath != "" {
				return os.WriteFile(outPath, data, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to a file instead of stdout")
	return cmd
}

func newCatalogNormalizeCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "normalize <file>",
		Short: "Rewrite an arbitrary agent config into the standard agents.yaml shape",
		Long: "Normalize runs one model call that converts an agent configuration " +
			"in any format into the standard agents.yaml shape, then validates the " +
			"result. Requires a credential for the configured default model.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			router := provider.NewRouter(credential.NewResolver(), []provider.Adapter{
				openai.New(),
				gemini.New(),
				anthropic.New(),
				grok.New(),
			}, func(o *provider.RouterOptions) { o.Logger = log })
			n := catalog.NewNormalizer(router, func(o *catalog.NormalizerOptions) {
				o.Model = settings.Model
			})

			c, err := n.Normalize(cmd.Context(), string(raw))
			if err != nil {
				return err
			}
			data, err := catalog.Marshal(c)
			if err != nil {
				return err
			}
			if outPath != "" {
				return os.WriteFile(outPath, data, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to a file instead of stdout")
	return cmd
}
