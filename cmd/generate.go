package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/edugen/internal/app"
	"github.com/abhisek/edugen/internal/generation"
)

var generateCmd = &cobra.Command{
	Use:   "generate <tool>",
	Short: "Run one generator against a JSON request and print the response",
	Example: `  echo '{"topic":"Photosynthesis","taxonomyLevels":["remember"]}' | edugen generate mcq-generator
  edugen generate rubric-generator --input rubric.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		input, _ := cmd.Flags().GetString("input")
		body, err := readInput(input)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), *cfg, log)
		if err != nil {
			return fmt.Errorf("build app: %w", err)
		}
		out, err := a.Generate(cmd.Context(), args[0], body)
		if err != nil {
			var genErr *generation.Error
			if errors.As(err, &genErr) && len(genErr.Fields) > 0 {
				return fmt.Errorf("%w (fields: %v)", err, genErr.Fields)
			}
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

// readInput reads the request body from a file, or stdin for "-".
func readInput(path string) (json.RawMessage, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}

func init() {
	generateCmd.Flags().StringP("input", "i", "-", "Request JSON file, or - for stdin")
}
