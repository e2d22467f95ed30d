package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/report"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Inspect and check quiz tables",
}

var quizShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active quiz table",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		raw, _ := cmd.Flags().GetBool("raw")

		e, err := loadEnv(cmd, logConsole)
		if err != nil {
			return err
		}
		defer e.Close()

		cfg := e.engine.Config()
		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}

		md := report.Table(cfg)
		if raw {
			_, err := fmt.Fprint(out, md)
			return err
		}
		rendered, err := report.Render(md, 0)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

var quizValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a quiz table file against the schema and its cross references",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := quiz.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d questions, %d labels)\n",
			args[0], len(cfg.Questions), len(cfg.AllLabels()))
		return nil
	},
}

func init() {
	quizShowCmd.Flags().Bool("json", false, "Print the table as JSON")
	quizShowCmd.Flags().Bool("raw", false, "Print Markdown without terminal styling")

	quizCmd.AddCommand(quizShowCmd)
	quizCmd.AddCommand(quizValidateCmd)
}
