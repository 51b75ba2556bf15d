package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/disha/internal/app"
)

// runApp builds dependencies and launches the TUI, resuming the student who
// was logged in last time.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	current, err := d.students.Current(cmd.Context())
	if err != nil {
		return fmt.Errorf("restore login: %w", err)
	}
	return app.Run(d.env(), current)
}
