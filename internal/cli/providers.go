package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wallfeed/pkg/integrations"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/providers"
)

// providerInfo is one row of the providers listing.
type providerInfo struct {
	Enabled    bool                `json:"enabled"`
	Summary    string              `json:"summary"`
	Descriptor provider.Descriptor `json:"descriptor"`
}

// providersCommand creates the providers command.
func (c *CLI) providersCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List built-in providers and their effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := c.providerInfos()
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			rows := make([][]string, len(infos))
			for i, p := range infos {
				state := "off"
				if p.Enabled {
					state = "on"
				}
				endpoint := integrations.JoinURL(p.Descriptor.BaseURL, p.Descriptor.APIPath)
				rows[i] = []string{string(p.Descriptor.Type), state, p.Summary, endpoint}
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(styleBorder).
				Headers("Type", "Enabled", "Summary", "Endpoint").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return styleHeader
					}
					if !infos[row].Enabled {
						return StyleDim
					}
					if col == 1 {
						return StyleSuccess
					}
					return lipgloss.NewStyle()
				})
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

// providerInfos describes every built-in provider under the loaded
// configuration. Credentials are redacted.
func (c *CLI) providerInfos() []providerInfo {
	rng := provider.NewRand()
	infos := make([]providerInfo, len(providers.All))
	for i, p := range providers.All {
		infos[i] = providerInfo{
			Enabled:    p.Enabled(&c.cfg.Providers),
			Summary:    p.Summary,
			Descriptor: p.New(&c.cfg.Providers, rng).Descriptor().Redacted(),
		}
	}
	return infos
}
