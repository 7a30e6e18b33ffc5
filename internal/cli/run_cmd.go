package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stackfield/agentstudio/runner"
)

func newRunCmd() *cobra.Command {
	var (
		model     string
		prompt    string
		maxTokens int
		inputFile string
	)

	cmd := &cobra.Command{
		Use:   "run <agent-id> [input...]",
		Short: "Run a single agent over input and print its response",
		Long: "Run executes one catalog agent over the given input. Input comes " +
			"from the remaining arguments, from --input-file, or from stdin when " +
			"neither is given. The run is appended to the local history.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := resolveInput(args[1:], inputFile, cmd.InOrStdin())
			if err != nil {
				return err
			}

			ws, err := newWorkspace()
			if err != nil {
				return err
			}
			sess := ws.Session("cli")

			out, err := sess.Runner.Run(cmd.Context(), args[0], input, func(o *runner.RunOptions) {
				o.Prompt = prompt
				if model != "" {
					o.Model = model
				}
				if maxTokens > 0 {
					o.MaxTokens = maxTokens
				}
			})
			if appendErr := appendHistory(sess.History.All()); appendErr != nil {
				log.Warn("failed to persist run history", "error", appendErr.Error())
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "override the agent's model")
	cmd.Flags().StringVar(&prompt, "prompt", "", "instruction joined with the input")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "override the response token budget")
	cmd.Flags().StringVar(&inputFile, "input-file", "", "read input from a file (- for stdin)")

	return cmd
}

func resolveInput(args []string, inputFile string, stdin io.Reader) (string, error) {
	if inputFile != "" && inputFile != "-" {
		data, err := os.ReadFile(inputFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if inputFile == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
