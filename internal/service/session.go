// Package service drives quiz sessions: it asks the selector for questions,
// collects answers through a Prompter, records outcomes into the history
// store, and saves the store when the session ends.
package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tuxprep/trainer/internal/domain/history"
	"github.com/tuxprep/trainer/internal/domain/question"
	"github.com/tuxprep/trainer/internal/domain/session"
	"github.com/tuxprep/trainer/internal/id"
	"github.com/tuxprep/trainer/internal/selector"
	"github.com/tuxprep/trainer/internal/store"
)

// AnswerKind tags a user response to a question.
type AnswerKind int

const (
	// AnswerChoice is a selected option index.
	AnswerChoice AnswerKind = iota
	// AnswerSkip moves on without recording anything.
	AnswerSkip
	// AnswerQuit ends the session immediately without recording.
	AnswerQuit
)

// Answer is one user response. Choice is only meaningful for AnswerChoice.
type Answer struct {
	Kind   AnswerKind
	Choice int
}

// Prompter is the interactive surface the session drives. Ask blocks until
// the user responds; Feedback is only called in standard mode, right after
// an answer is recorded.
type Prompter interface {
	Ask(number int, q question.Record) (Answer, error)
	Feedback(q question.Record, choice int, correct bool)
}

// VerifyAnswer is one deferred-feedback entry collected in verify mode.
type VerifyAnswer struct {
	Question question.Record
	Choice   int
	Correct  bool
}

// Result is what a finished session hands back to the caller.
type Result struct {
	Summary history.SessionSummary
	Verify  []VerifyAnswer // populated only in verify mode
}

// Accuracy returns the session's correct/answered ratio.
func (r *Result) Accuracy() float64 {
	if r.Summary.Answered == 0 {
		return 0
	}
	return float64(r.Summary.Correct) / float64(r.Summary.Answered)
}

// SessionService runs quiz sessions against a fixed bank, history store,
// and repository.
type SessionService struct {
	bank   *question.Bank
	hist   *history.Store
	repo   store.Repository
	sel    *selector.Selector
	logger *slog.Logger
	now    func() time.Time
}

// NewSessionService creates a SessionService.
func NewSessionService(bank *question.Bank, hist *history.Store, repo store.Repository, sel *selector.Selector, logger *slog.Logger) *SessionService {
	return &SessionService{
		bank:   bank,
		hist:   hist,
		repo:   repo,
		sel:    sel,
		logger: logger,
		now:    time.Now,
	}
}

// Run executes one session to completion: selector exhaustion, question cap,
// or user quit. History is updated in real time in both modes; only feedback
// timing differs. The store is saved best-effort on termination.
func (s *SessionService) Run(p Prompter, cfg session.Config) (*Result, error) {
	state := session.NewState()
	startedAt := s.now()

	var restricted []int
	if cfg.QuestionTexts != nil {
		restricted = s.resolveTexts(cfg.QuestionTexts)
	}

	var verify []VerifyAnswer
	asked := 0

	for {
		if cfg.MaxQuestions != nil && state.AnsweredCount >= *cfg.MaxQuestions {
			break
		}

		var (
			q  question.Record
			ok bool
		)
		if cfg.QuestionTexts != nil {
			q, _, ok = s.sel.NextOf(s.hist, state, restricted)
		} else {
			q, _, ok = s.sel.Next(s.hist, state, cfg.Category)
		}
		if !ok {
			break
		}

		asked++
		answer, err := p.Ask(asked, q)
		if err != nil {
			// A broken prompt (EOF, closed input) ends the session like a
			// quit; everything answered so far is already recorded.
			s.logger.Warn("prompt failed, ending session", "error", err)
			break
		}

		if answer.Kind == AnswerQuit {
			break
		}
		if answer.Kind == AnswerSkip {
			continue
		}
		if answer.Choice < 0 || answer.Choice >= len(q.Options) {
			return nil, fmt.Errorf("answer choice %d out of range for %q", answer.Choice, q.Text)
		}

		correct := answer.Choice == q.CorrectIndex
		s.hist.RecordAnswer(q.Text, q.Category, correct, s.now())

		if correct {
			state.Score++
		}
		state.AnsweredCount++

		switch cfg.Mode {
		case session.ModeVerify:
			verify = append(verify, VerifyAnswer{Question: q, Choice: answer.Choice, Correct: correct})
		default:
			p.Feedback(q, answer.Choice, correct)
		}
	}

	summary := history.SessionSummary{
		ID:        id.New(),
		StartedAt: startedAt,
		Mode:      cfg.Mode.String(),
		Category:  cfg.Category,
		Answered:  state.AnsweredCount,
		Correct:   state.Score,
	}
	s.hist.AppendSession(summary)

	if err := s.repo.Save(s.hist); err != nil {
		// Best-effort: losing this save is accepted, the session result is
		// still returned.
		s.logger.Error("failed to save history", "error", err)
	}

	return &Result{Summary: summary, Verify: verify}, nil
}

// resolveTexts maps question texts to bank indices. Texts no longer in the
// bank are orphans: they are skipped and pruned from the review set.
func (s *SessionService) resolveTexts(texts []string) []int {
	indices := make([]int, 0, len(texts))
	for _, text := range texts {
		i, ok := s.bank.IndexOf(text)
		if !ok {
			s.logger.Info("pruning orphaned review entry", "question", text)
			s.hist.RemoveFromReview(text)
			continue
		}
		indices = append(indices, i)
	}
	return indices
}
