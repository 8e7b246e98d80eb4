// Package cli is the interactive terminal surface over the quiz core. It
// owns all prompting and rendering; the session service and report package
// do the actual work.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tuxprep/trainer/internal/domain/history"
	"github.com/tuxprep/trainer/internal/domain/question"
	"github.com/tuxprep/trainer/internal/domain/session"
	"github.com/tuxprep/trainer/internal/export"
	"github.com/tuxprep/trainer/internal/report"
	"github.com/tuxprep/trainer/internal/service"
	"github.com/tuxprep/trainer/internal/store"
)

// App wires the interactive loop to the core components.
type App struct {
	bank   *question.Bank
	hist   *history.Store
	repo   store.Repository
	svc    *service.SessionService
	logger *slog.Logger
	in     *bufio.Scanner
	out    io.Writer
}

// New creates the interactive app. in/out are injectable for tests.
func New(bank *question.Bank, hist *history.Store, repo store.Repository, svc *service.SessionService, logger *slog.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		bank:   bank,
		hist:   hist,
		repo:   repo,
		svc:    svc,
		logger: logger,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run shows the main menu until the user quits or input ends.
func (a *App) Run() error {
	fmt.Fprintln(a.out, "CompTIA Linux+ Trainer")

	for {
		fmt.Fprint(a.out, `
1) Practice session
2) Verify session (feedback at the end)
3) Review incorrect answers
4) Statistics
5) Export question bank (Markdown)
6) Export history (JSON)
7) Clear history
8) Quit
> `)
		line, err := a.readLine()
		if err != nil {
			return nil
		}

		switch strings.TrimSpace(line) {
		case "1":
			err = a.runSession(session.ModeStandard)
		case "2":
			err = a.runSession(session.ModeVerify)
		case "3":
			err = a.runReview()
		case "4":
			err = a.statsMenu()
		case "5":
			err = a.exportQuestions()
		case "6":
			err = a.exportHistory()
		case "7":
			err = a.clearHistory()
		case "8", "q":
			return nil
		default:
			fmt.Fprintln(a.out, "Please choose 1-8.")
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// ── Sessions ────────────────────────────────────────────────────────────────

func (a *App) runSession(mode session.Mode) error {
	category, err := a.pickCategory()
	if err != nil {
		return err
	}

	cfg := session.DefaultConfig()
	cfg.Mode = mode
	cfg.Category = category

	result, err := a.svc.Run(a, cfg)
	if err != nil {
		return err
	}
	a.renderResult(result, mode)
	return nil
}

func (a *App) runReview() error {
	review := a.hist.ReviewList()
	if len(review) == 0 {
		fmt.Fprintln(a.out, "Nothing to review — no incorrectly answered questions on record.")
		return nil
	}

	cfg := session.DefaultConfig()
	cfg.QuestionTexts = review

	result, err := a.svc.Run(a, cfg)
	if err != nil {
		return err
	}
	a.renderResult(result, session.ModeStandard)
	return nil
}

func (a *App) renderResult(result *service.Result, mode session.Mode) {
	if mode == session.ModeVerify && len(result.Verify) > 0 {
		fmt.Fprintln(a.out, "\n── Session results ──")
		for i, v := range result.Verify {
			q := v.Question
			fmt.Fprintf(a.out, "\n%d. %s\n", i+1, q.Text)
			fmt.Fprintf(a.out, "   Your answer: %s. %s\n", letter(v.Choice), q.Options[v.Choice])
			if v.Correct {
				fmt.Fprintln(a.out, "   Correct!")
			} else {
				fmt.Fprintf(a.out, "   Correct answer: %s. %s\n", letter(q.CorrectIndex), q.Options[q.CorrectIndex])
				fmt.Fprintf(a.out, "   %s\n", q.Explanation)
			}
		}
	}

	sum := result.Summary
	if sum.Answered == 0 {
		fmt.Fprintln(a.out, "\nSession ended with no answered questions.")
		return
	}
	fmt.Fprintf(a.out, "\nSession complete: %d/%d correct (%.0f%%).\n",
		sum.Correct, sum.Answered, result.Accuracy()*100)
}

// ── service.Prompter implementation ─────────────────────────────────────────

// Ask presents a question and keeps re-prompting until the input is a valid
// option number, skip, or quit. Invalid input never reaches the session.
func (a *App) Ask(number int, q question.Record) (service.Answer, error) {
	fmt.Fprintf(a.out, "\nQ%d [%s]\n%s\n", number, q.Category, q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(a.out, "Answer 1-%d, s to skip, q to quit: ", len(q.Options))
		line, err := a.readLine()
		if err != nil {
			return service.Answer{}, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "s":
			return service.Answer{Kind: service.AnswerSkip}, nil
		case "q":
			return service.Answer{Kind: service.AnswerQuit}, nil
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 1 || n > len(q.Options) {
			fmt.Fprintln(a.out, "Invalid input, try again.")
			continue
		}
		return service.Answer{Kind: service.AnswerChoice, Choice: n - 1}, nil
	}
}

// Feedback reveals correctness immediately (standard mode only).
func (a *App) Feedback(q question.Record, choice int, correct bool) {
	if correct {
		fmt.Fprintln(a.out, "Correct!")
		return
	}
	fmt.Fprintf(a.out, "Incorrect. The answer is %s. %s\n", letter(q.CorrectIndex), q.Options[q.CorrectIndex])
	fmt.Fprintf(a.out, "%s\n", q.Explanation)
}

// ── Statistics ──────────────────────────────────────────────────────────────

func (a *App) statsMenu() error {
	fmt.Fprint(a.out, `
1) Overall accuracy
2) Categories (alphabetical)
3) Categories (weakest first)
4) Per-question report
5) Areas for improvement
> `)
	line, err := a.readLine()
	if err != nil {
		return err
	}

	switch strings.TrimSpace(line) {
	case "1":
		if a.hist.TotalAttempts == 0 {
			fmt.Fprintln(a.out, "No attempts recorded yet.")
			return nil
		}
		fmt.Fprintf(a.out, "Overall: %d/%d correct (%.1f%%)\n",
			a.hist.TotalCorrect, a.hist.TotalAttempts, report.Overall(a.hist)*100)
	case "2":
		a.renderCategories(report.Categories(a.hist, report.ByName))
	case "3":
		a.renderCategories(report.Categories(a.hist, report.ByWeakest))
	case "4":
		a.renderQuestions(report.Questions(a.hist))
	case "5":
		weak := report.WeakCategories(a.hist, 3, 0.7)
		if len(weak) == 0 {
			fmt.Fprintln(a.out, "No weak areas detected (need 3+ attempts below 70%).")
			return nil
		}
		a.renderCategories(weak)
	default:
		fmt.Fprintln(a.out, "Please choose 1-5.")
	}
	return nil
}

func (a *App) renderCategories(rows []report.CategoryRow) {
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No category data yet.")
		return
	}
	for _, r := range rows {
		fmt.Fprintf(a.out, "%-30s %3d/%-3d  %5.1f%%\n", r.Category, r.Correct, r.Attempts, r.Accuracy*100)
	}
}

func (a *App) renderQuestions(rows []report.QuestionRow) {
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No question data yet.")
		return
	}
	for _, r := range rows {
		fmt.Fprintf(a.out, "%3d/%-3d %5.1f%%  last: %-9s  %s\n",
			r.Correct, r.Attempts, r.Accuracy*100, r.LastOutcome, r.Text)
	}
}

// ── Exports and maintenance ─────────────────────────────────────────────────

func (a *App) exportQuestions() error {
	path, err := a.prompt("Export path", "questions.md")
	if err != nil {
		return err
	}
	if err := export.QuestionsToFile(path, a.bank); err != nil {
		fmt.Fprintf(a.out, "Export failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "Wrote %s\n", path)
	return nil
}

func (a *App) exportHistory() error {
	path, err := a.prompt("Export path", "history-export.json")
	if err != nil {
		return err
	}
	if err := export.History(a.hist, path); err != nil {
		fmt.Fprintf(a.out, "Export failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "Wrote %s\n", path)
	return nil
}

func (a *App) clearHistory() error {
	fmt.Fprint(a.out, "This erases all statistics permanently. Type yes to confirm: ")
	line, err := a.readLine()
	if err != nil {
		return err
	}
	if strings.TrimSpace(line) != "yes" {
		fmt.Fprintln(a.out, "Not cleared.")
		return nil
	}

	a.hist.Clear(a.bank.Categories())
	if err := a.repo.Save(a.hist); err != nil {
		a.logger.Error("failed to save cleared history", "error", err)
		fmt.Fprintln(a.out, "History cleared in memory, but saving failed.")
		return nil
	}
	fmt.Fprintln(a.out, "History cleared.")
	return nil
}

// ── Input helpers ───────────────────────────────────────────────────────────

// pickCategory shows the distinct bank categories plus an all-categories
// option and returns the chosen filter ("" = all).
func (a *App) pickCategory() (string, error) {
	cats := a.bank.Categories()
	fmt.Fprintln(a.out, "\n0) All categories")
	for i, c := range cats {
		fmt.Fprintf(a.out, "%d) %s\n", i+1, c)
	}

	for {
		fmt.Fprint(a.out, "Category: ")
		line, err := a.readLine()
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 0 || n > len(cats) {
			fmt.Fprintln(a.out, "Invalid input, try again.")
			continue
		}
		if n == 0 {
			return "", nil
		}
		return cats[n-1], nil
	}
}

func (a *App) prompt(label, fallback string) (string, error) {
	fmt.Fprintf(a.out, "%s [%s]: ", label, fallback)
	line, err := a.readLine()
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

func (a *App) readLine() (string, error) {
	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return a.in.Text(), nil
}

func letter(i int) string {
	return string(rune('A' + i))
}
