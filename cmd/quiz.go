package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/disha/internal/app"
	"github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/results"
	"github.com/abhisek/disha/internal/session"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "List and play quizzes",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quizzes in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		quizzes := d.catalog.Quizzes()
		if category != "" {
			quizzes = d.catalog.ByCategory(quiz.Category(strings.ToLower(category)))
		}
		if len(quizzes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No quizzes found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tCLASS\tQUESTIONS\tTIME")
		for _, q := range quizzes {
			class := q.Class
			if class == "" {
				class = "all"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				q.ID, q.Title, q.BadgeLabel(), class, q.Len(),
				session.FormatDuration(time.Duration(q.TimePerQuestion)*time.Second))
		}
		return w.Flush()
	},
}

var quizPlayCmd = &cobra.Command{
	Use:   "play <id>",
	Short: "Play a quiz",
	Long:  "Play a quiz in the TUI, or line by line with --plain. Results are saved for the logged-in student.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		q, ok := d.catalog.QuizByID(args[0])
		if !ok {
			return fmt.Errorf("quiz %q not found (see `disha quiz list`)", args[0])
		}

		ctx := cmd.Context()
		st, err := d.students.Current(ctx)
		if err != nil {
			return fmt.Errorf("restore login: %w", err)
		}

		plain, _ := cmd.Flags().GetBool("plain")
		if !plain && !d.cfg.PlainQuiz {
			if st == nil {
				return errors.New("no student is logged in; log in with `disha` first or use --plain")
			}
			return app.RunQuiz(d.env(), st, q)
		}

		s, err := playPlain(ctx, os.Stdin, cmd.OutOrStdout(), q, session.DefaultRevealDelay, d.log)
		if err != nil {
			return err
		}
		if s.Phase != session.PhaseComplete {
			fmt.Fprintln(cmd.OutOrStdout(), "\nQuiz abandoned.")
			return nil
		}

		r := results.Calculate(s, time.Now())
		printResult(cmd.OutOrStdout(), r)
		if st == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "\nNot logged in; this result was not saved.")
			return nil
		}
		if err := d.store.AttemptRepo().Save(context.WithoutCancel(ctx), r.Record(uuid.New().String(), st.ID)); err != nil {
			return fmt.Errorf("save attempt: %w", err)
		}
		return nil
	},
}

func init() {
	quizListCmd.Flags().StringP("category", "c", "", "Filter by category (coding, aptitude, academic)")
	quizPlayCmd.Flags().Bool("plain", false, "Play line by line without the TUI (default from DISHA_PLAIN)")

	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizPlayCmd)
}
