package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cheerioskun/regexblocks/internal/models"
	"github.com/cheerioskun/regexblocks/internal/pattern"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// paletteCmd represents the palette command
var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List the available blocks",
	Long: `List every block of the palette, grouped by category, with the token
'regexblocks render' accepts and the fragment the block renders to.

Examples:
  regexblocks palette
  regexblocks palette --default-value foo`,
	Args: cobra.NoArgs,
	RunE: runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	templates := models.Catalog(viper.GetString("default_value"))

	for _, g := range models.Groups(templates) {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Token", "Label", "Fragment")

		for _, tmpl := range g.Templates {
			token := tmpl.Kind.String()
			if tmpl.Kind.Editable() {
				token += "=" + tmpl.Value
			}
			label := tmpl.Kind.Label()
			if label == "" {
				label = "text"
			}
			t.Row(token, label, pattern.Fragment(tmpl.Instantiate()))
		}

		fmt.Fprintln(out, g.Heading)
		fmt.Fprintln(out, t.String())
	}

	return nil
}
