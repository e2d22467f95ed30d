package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/cinematch/internal/quiz"
)

// isolate keeps config discovery and env overrides away from the host.
func isolate(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	for _, kv := range os.Environ() {
		if k, _, _ := strings.Cut(kv, "="); strings.HasPrefix(k, "CINEMATCH_") {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}
	}
	t.Setenv("CINEMATCH_LOG_LEVEL", "disabled")
}

// resetFlags clears flag values left over from a previous Execute.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// answersFor returns --answer flags voting for cat on every question.
func answersFor(cfg *quiz.Config, cat quiz.Category) []string {
	var args []string
	for _, q := range cfg.Questions {
		for _, c := range q.Choices {
			if c.Category == cat {
				args = append(args, "--answer", q.ID+"="+c.Text)
			}
		}
	}
	return args
}

func TestParseAnswers(t *testing.T) {
	cfg := quiz.Default()
	q := cfg.Questions[0]

	a, err := parseAnswers(cfg, []string{q.ID + "=" + q.Choices[1].Text})
	require.NoError(t, err)
	got, ok := a.Choice(q.ID)
	require.True(t, ok)
	assert.Equal(t, q.Choices[1].Text, got)

	a, err = parseAnswers(cfg, []string{q.ID + "= "})
	require.NoError(t, err)
	assert.Equal(t, 0, a.Len(), "blank choice counts as unanswered")

	_, err = parseAnswers(cfg, []string{"no-equals"})
	assert.ErrorContains(t, err, "want <question id>=<choice text>")

	_, err = parseAnswers(cfg, []string{"nope=x"})
	assert.ErrorContains(t, err, "unknown question")

	_, err = parseAnswers(cfg, []string{q.ID + "=not a choice"})
	assert.Error(t, err)
}

func TestClassifyJSON(t *testing.T) {
	isolate(t)
	cfg := quiz.Default()

	args := append([]string{"classify", "--json"}, answersFor(cfg, quiz.CategoryAdventurous)...)
	out, err := execute(t, args...)
	require.NoError(t, err)

	var res quiz.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, quiz.CategoryAdventurous, res.Category)
	assert.True(t, cfg.Categories[quiz.CategoryAdventurous].HasLabel(res.Label))
	assert.Equal(t, 5, res.Tally[quiz.CategoryAdventurous])
}

func TestClassifyMissing(t *testing.T) {
	isolate(t)
	cfg := quiz.Default()

	args := append([]string{"classify", "--json"}, answersFor(cfg, quiz.CategoryCheerful)[:4]...)
	_, err := execute(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing answers for: "+strings.Join([]string{
		cfg.Questions[2].ID, cfg.Questions[3].ID, cfg.Questions[4].ID,
	}, ", "))
}

func TestClassifyLimitRange(t *testing.T) {
	isolate(t)
	cfg := quiz.Default()

	for _, n := range []string{"0", "21"} {
		args := append([]string{"classify", "--recommend", "--limit", n}, answersFor(cfg, quiz.CategoryReflective)...)
		_, err := execute(t, args...)
		require.Error(t, err, "limit %s", n)
		assert.Contains(t, err.Error(), "--limit must be between 1 and 20")
	}
}

// The Example text must classify as written.
func TestClassifyExampleAnswers(t *testing.T) {
	cfg := quiz.Default()
	var pairs []string
	for _, line := range strings.Split(classifyCmd.Example, "\n") {
		for _, part := range strings.Split(line, " -a ")[1:] {
			part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "\\"))
			part, _, _ = strings.Cut(part, " --")
			pairs = append(pairs, strings.ReplaceAll(part, `"`, ""))
		}
	}
	a, err := parseAnswers(cfg, pairs)
	require.NoError(t, err)
	assert.True(t, cfg.IsComplete(a))
}

func TestQuizValidate(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	data, err := yaml.Marshal(quiz.Default())
	require.NoError(t, err)
	good := filepath.Join(dir, "quiz.yaml")
	require.NoError(t, os.WriteFile(good, data, 0o644))

	out, err := execute(t, "quiz", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (5 questions, 6 labels)")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("priority: []\n"), 0o644))
	_, err = execute(t, "quiz", "validate", bad)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cinematch (devel)\n", out)
}
