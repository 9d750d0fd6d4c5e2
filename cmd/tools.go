package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/edugen/internal/app"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the content generators and their required fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := app.Registry()
		if err != nil {
			return err
		}
		catalog := registry.Catalog()

		if out, _ := cmd.Flags().GetString("output"); out == "yaml" {
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(catalog)
		}

		fmt.Printf("%-18s  %-30s  %s\n", "Name", "Title", "Required")
		fmt.Println(strings.Repeat("─", 80))
		for _, t := range catalog {
			fmt.Printf("%-18s  %-30s  %s\n", t.Name, t.Title, strings.Join(t.Required, ", "))
		}
		return nil
	},
}

func init() {
	toolsCmd.Flags().StringP("output", "o", "table", "Output format: table or yaml")
}
