package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/dsaquiz/internal/config"
	"github.com/abhisek/dsaquiz/internal/quizgen"
	"github.com/abhisek/dsaquiz/internal/telemetry"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate quizzes locally without posting them",
	Long: `Generate quizzes with the configured provider and print them.

Nothing is sent to Telegram, so TOKEN and CHAT_ID are not needed.
Useful for evaluating question quality and prompt or model changes.
With --interactive each quiz is asked on the terminal before the answer
and explanation are shown.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 3, "Number of quizzes to generate")
	previewCmd.Flags().Bool("json", false, "Print each result as a JSON line")
	previewCmd.Flags().Bool("interactive", false, "Answer each quiz on the terminal")
}

// previewRecord is one --json output line.
type previewRecord struct {
	quizgen.Quiz
	Source   quizgen.Source `json:"source"`
	Attempts int            `json:"attempts"`
	Error    string         `json:"error,omitempty"`
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	asJSON, _ := cmd.Flags().GetBool("json")
	interactive, _ := cmd.Flags().GetBool("interactive")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	cfg, err := config.LoadGeneration(envFiles(cmd)...)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger := telemetry.SetupLogging(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

	ctx := cmd.Context()
	gen, err := newGenerator(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	enc := json.NewEncoder(out)
	var previous string
	var asked, correct int

	for i := 1; i <= count; i++ {
		res := gen.Generate(ctx, previous)
		if !res.Fallback {
			previous = res.Quiz.Question
		}

		if asJSON {
			rec := previewRecord{Quiz: res.Quiz, Source: res.Source(), Attempts: res.Attempts}
			if res.Err != nil {
				rec.Error = res.Err.Error()
			}
			if err := enc.Encode(rec); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintf(out, "── Quiz %d/%d (%s, %d attempt(s)) ──\n", i, count, res.Source(), res.Attempts)
		printQuiz(out, res.Quiz)

		if interactive {
			fmt.Fprint(out, "\nYour answer (1-4): ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				break
			}
			asked++
			if checkAnswer(scanner.Text(), res.Quiz) {
				correct++
				fmt.Fprintln(out, "✓ Correct!")
			} else {
				fmt.Fprintln(out, "✗ Wrong.")
			}
		}

		fmt.Fprintf(out, "Answer: %d) %s\n", res.Quiz.CorrectOptionID+1, res.Quiz.Options[res.Quiz.CorrectOptionID])
		if res.Quiz.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", res.Quiz.Explanation)
		}
		fmt.Fprintln(out)
	}

	if interactive && !asJSON {
		fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, asked)
	}
	return nil
}

func printQuiz(w io.Writer, q quizgen.Quiz) {
	fmt.Fprintln(w, q.Question)
	for j, opt := range q.Options {
		fmt.Fprintf(w, "  %d) %s\n", j+1, opt)
	}
}

// checkAnswer reports whether a 1-based answer picks the correct option.
func checkAnswer(answer string, q quizgen.Quiz) bool {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	return err == nil && n-1 == q.CorrectOptionID
}
