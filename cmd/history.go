package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/disha/internal/session"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/student"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past quiz attempts",
	Long:  "Show past quiz attempts for the logged-in student, or for --email.",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		var st *student.Student
		if email != "" {
			st, err = d.students.ByEmail(ctx, email)
		} else {
			st, err = d.students.Current(ctx)
		}
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("no student registered with %s", email)
		case err != nil:
			return fmt.Errorf("find student: %w", err)
		case st == nil:
			return errors.New("no student is logged in; pass --email")
		}

		attempts, err := d.store.AttemptRepo().List(ctx, st.ID, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintf(out, "%s has not taken any quizzes yet.\n", st.Name)
			return nil
		}

		fmt.Fprintf(out, "Quiz history for %s (%s)\n", st.Name, st.Class.Label())
		fmt.Fprintf(out, "%-17s  %-30s  %6s  %7s  %s\n", "Completed", "Quiz", "Score", "Correct", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 78))
		for _, a := range attempts {
			fmt.Fprintf(out, "%-17s  %-30s  %5d%%  %7s  %s\n",
				a.CompletedAt.Local().Format("2006-01-02 15:04"),
				truncate(a.QuizTitle, 30),
				a.Score,
				fmt.Sprintf("%d/%d", a.Correct, a.Total),
				session.FormatDuration(a.TimeSpent),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("email", "", "Show history for this student instead of the logged-in one")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}
