package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edugen/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM backends",
}

var llmModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List model aliases with estimated pricing",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%-10s  %-18s  %-34s  %10s  %10s\n",
			"Provider", "Alias", "Model", "In/MTok", "Out/MTok")
		fmt.Println(strings.Repeat("─", 90))

		for _, m := range llm.KnownModels() {
			in, out := "?", "?"
			if m.Cost != nil {
				in, out = formatCost(m.Cost.InputPerMTok), formatCost(m.Cost.OutputPerMTok)
			}
			fmt.Printf("%-10s  %-18s  %-34s  %10s  %10s\n",
				m.Provider, m.Alias, truncate(m.ID, 34), in, out)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmModelsCmd)
}
