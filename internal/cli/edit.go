package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/flow"
	"github.com/flowgrid/flowgrid/pkg/flowfile"
)

// newEditCmd creates the edit command, which opens a diagram in the
// interactive terminal editor. A missing file starts an empty diagram that
// is created on first save.
func newEditCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a diagram in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}

			path := args[0]
			s := flow.New()
			if _, statErr := os.Stat(path); statErr == nil {
				if s, err = flowfile.ReadFile(path); err != nil {
					return err
				}
			}
			cfg.Apply(s)

			p := tea.NewProgram(newEditorModel(path, s), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(editorModel); ok && m.dirty {
				printWarning("Unsaved changes in %s were discarded", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (TOML)")

	return cmd
}
