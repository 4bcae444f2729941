package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/pipeline"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

var (
	browseHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
	browseStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	browseErrStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		count   int
		typ     string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through wallpapers interactively",
		Long: `Page through wallpapers in the terminal.

Keys:
  ↑/↓ or k/j   move
  n            load the next batch from the current provider
  p            switch to the next provider
  enter        print the selected wallpaper URL and exit
  q            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.newRuntime(noCache)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			m := newBrowseModel(rt.Runner.Registry().Types(), typ, runnerFetch(ctx, rt.Runner, count))
			final, err := tea.NewProgram(m,
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			).Run()
			if err != nil {
				return err
			}
			if sel := final.(browseModel).Selected; sel != nil {
				fmt.Fprintln(cmd.OutOrStdout(), sel.Full)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "wallpapers per batch (default fetch.default_count)")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "starting provider; random when empty")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the upstream response cache")
	_ = cmd.RegisterFlagCompletionFunc("type", completeTypes)

	return cmd
}

// batchMsg carries the result of one background fetch.
type batchMsg struct {
	result pipeline.Result
}

// fetchFunc returns a command that fetches one batch from hint.
type fetchFunc func(hint string) tea.Cmd

func runnerFetch(ctx context.Context, r *pipeline.Runner, count int) fetchFunc {
	return func(hint string) tea.Cmd {
		return func() tea.Msg {
			return batchMsg{result: r.ResolveAndFetch(ctx, count, hint)}
		}
	}
}

// =============================================================================
// browseModel - Interactive wallpaper pager
// =============================================================================

type browseModel struct {
	fetch    fetchFunc
	types    []wallpaper.Type
	hint     string
	provider wallpaper.Type
	records  []wallpaper.Record
	cursor   int
	offset   int
	height   int
	loading  bool
	err      error

	// Selected is set when the user confirms a wallpaper.
	Selected *wallpaper.Record
}

func newBrowseModel(types []wallpaper.Type, hint string, fetch fetchFunc) browseModel {
	return browseModel{
		fetch:   fetch,
		types:   types,
		hint:    hint,
		height:  15,
		loading: true,
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.fetch(m.hint)
}

func (m *browseModel) load(hint string) tea.Cmd {
	m.loading = true
	return m.fetch(hint)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case batchMsg:
		m.loading = false
		m.err = msg.result.Err
		if msg.result.Provider != "" {
			m.provider = msg.result.Provider
		}
		if len(msg.result.Wallpapers) > 0 {
			m.records = append(m.records, msg.result.Wallpapers...)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.records)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "n":
			if !m.loading {
				return m, m.load(string(m.provider))
			}
		case "p":
			if !m.loading && len(m.types) > 0 {
				return m, m.load(string(m.nextProvider()))
			}
		case "enter":
			if len(m.records) > 0 {
				sel := m.records[m.cursor]
				m.Selected = &sel
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

// nextProvider returns the provider after the current one, wrapping around.
func (m browseModel) nextProvider() wallpaper.Type {
	i := slices.Index(m.types, m.provider)
	return m.types[(i+1)%len(m.types)]
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Wallpapers"))
	if m.provider != "" {
		b.WriteString(browseStatusStyle.Render("  " + string(m.provider)))
	}
	b.WriteString("\n")
	b.WriteString(browseHelpStyle.Render("↑/↓ navigate  n next batch  p next provider  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.records) > 0 {
		end := min(m.offset+m.height, len(m.records))
		b.WriteString(wallpaperTable(m.records[m.offset:end], m.offset, m.cursor).Render())
		b.WriteString("\n\n")
		b.WriteString(browseHelpStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.records))))
		b.WriteString("\n")
	}

	switch {
	case m.loading:
		b.WriteString(browseStatusStyle.Render("Loading..."))
	case m.err != nil:
		b.WriteString(browseErrStyle.Render(fmt.Sprintf("%s failed: %s", m.provider, errors.UserMessage(m.err))))
	case len(m.records) == 0:
		b.WriteString(browseStatusStyle.Render("No wallpapers yet, press n to retry."))
	}
	b.WriteString("\n")

	return b.String()
}
