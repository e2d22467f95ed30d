package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/cinematch/internal/catalog"
	"github.com/abhisek/cinematch/internal/quiz"
	"github.com/abhisek/cinematch/internal/report"
	"github.com/abhisek/cinematch/internal/session"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a full answer set without the UI",
	Long: `Classify answers given as --answer <question id>=<choice text>, one per question.

Use "cinematch quiz show" to list question ids and choices. With --recommend
the result also lists movies from TMDB for the chosen genre.`,
	Example: `  cinematch classify -a weekend="Rest at home" -a stress="Spend time alone" \
    -a movie_value="Lots of laughs" -a travel="Plan every stop" \
    -a friend_role="The listener" --json`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().StringArrayP("answer", "a", nil, "Answer as <question id>=<choice text> (repeatable)")
	classifyCmd.Flags().Bool("json", false, "Print JSON instead of formatted text")
	classifyCmd.Flags().Bool("raw", false, "Print Markdown without terminal styling")
	classifyCmd.Flags().BoolP("recommend", "r", false, "Also fetch candidate movies from TMDB")
	classifyCmd.Flags().IntP("limit", "n", 0, "Number of candidates, 1-20 (default tmdb.limit)")
}

func runClassify(cmd *cobra.Command, args []string) error {
	pairs, _ := cmd.Flags().GetStringArray("answer")
	asJSON, _ := cmd.Flags().GetBool("json")
	raw, _ := cmd.Flags().GetBool("raw")
	recommend, _ := cmd.Flags().GetBool("recommend")
	limit, _ := cmd.Flags().GetInt("limit")
	if cmd.Flags().Changed("limit") && (limit < 1 || limit > session.MaxLimit) {
		return fmt.Errorf("--limit must be between 1 and %d", session.MaxLimit)
	}

	e, err := loadEnv(cmd, logConsole)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.engine.Config()
	answers, err := parseAnswers(cfg, pairs)
	if err != nil {
		return err
	}

	res, err := session.Classify(e.engine, answers)
	if err != nil {
		var missing *quiz.MissingAnswersError
		if errors.As(err, &missing) {
			return fmt.Errorf("missing answers for: %s", strings.Join(missing.QuestionIDs, ", "))
		}
		return err
	}

	var (
		payload any = res
		md          = report.Result(cfg, res)
	)
	if recommend {
		repo, err := e.openStore()
		if err != nil {
			return err
		}
		if limit <= 0 {
			limit = e.cfg.TMDB.Limit
		}
		writer, _ := e.pitchWriter(cmd.Context(), repo)
		rec, err := session.NewRecommender(catalog.WithLogging(e.tmdbClient(), repo), writer).
			Recommend(cmd.Context(), uuid.NewString(), res, limit)
		if err != nil {
			return fmt.Errorf("recommend: %w", err)
		}
		payload = rec
		md = report.Recommendation(cfg, rec)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
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
}

// parseAnswers turns id=choice pairs into an answer set. Unknown ids and
// undeclared choices are rejected; repeating an id keeps the last value.
func parseAnswers(cfg *quiz.Config, pairs []string) (quiz.AnswerSet, error) {
	raw := make(map[string]string, len(pairs))
	for _, p := range pairs {
		id, choice, ok := strings.Cut(p, "=")
		if !ok {
			return quiz.AnswerSet{}, fmt.Errorf("answer %q: want <question id>=<choice text>", p)
		}
		raw[strings.TrimSpace(id)] = strings.TrimSpace(choice)
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	a := quiz.NewAnswerSet()
	for _, id := range ids {
		choice := raw[id]
		if choice == "" {
			continue
		}
		if err := cfg.CheckChoice(id, choice); err != nil {
			return quiz.AnswerSet{}, err
		}
		a = a.With(id, choice)
	}
	return a, nil
}
