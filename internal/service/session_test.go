package service_test

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/tuxprep/trainer/internal/domain/history"
	"github.com/tuxprep/trainer/internal/domain/question"
	"github.com/tuxprep/trainer/internal/domain/session"
	"github.com/tuxprep/trainer/internal/selector"
	"github.com/tuxprep/trainer/internal/service"
)

// scriptedPrompter replays a fixed sequence of answers and records every
// Feedback call.
type scriptedPrompter struct {
	script    []scriptStep
	pos       int
	feedbacks []feedbackCall
}

type scriptStep struct {
	answer service.Answer
	err    error
}

type feedbackCall struct {
	text    string
	correct bool
}

func (p *scriptedPrompter) Ask(number int, q question.Record) (service.Answer, error) {
	if p.pos >= len(p.script) {
		return service.Answer{Kind: service.AnswerQuit}, nil
	}
	step := p.script[p.pos]
	p.pos++
	return step.answer, step.err
}

func (p *scriptedPrompter) Feedback(q question.Record, choice int, correct bool) {
	p.feedbacks = append(p.feedbacks, feedbackCall{text: q.Text, correct: correct})
}

// memoryRepo counts saves and remembers the last saved store.
type memoryRepo struct {
	saves   int
	saveErr error
	last    *history.Store
}

func (r *memoryRepo) Load() (*history.Store, error) { return history.NewStore(), nil }
func (r *memoryRepo) Close() error                  { return nil }
func (r *memoryRepo) Save(st *history.Store) error {
	r.saves++
	r.last = st
	return r.saveErr
}

func choose(i int) scriptStep {
	return scriptStep{answer: service.Answer{Kind: service.AnswerChoice, Choice: i}}
}

func testFixture(t *testing.T, n int) (*question.Bank, *history.Store, *memoryRepo, *service.SessionService) {
	t.Helper()
	var records []question.Record
	for i := 0; i < n; i++ {
		records = append(records, question.Record{
			Text:         "Question " + string(rune('A'+i)),
			Options:      []string{"right", "wrong", "also wrong"},
			CorrectIndex: 0,
			Category:     "Networking",
			Explanation:  "the first option is correct",
		})
	}
	bank, err := question.NewBank(records)
	if err != nil {
		t.Fatalf("building bank: %v", err)
	}

	hist := history.NewStore()
	hist.SeedCategories(bank.Categories())
	repo := &memoryRepo{}
	sel := selector.NewWithConfig(bank, selector.DefaultWeights(), selector.PolicyEnd, rand.New(rand.NewSource(7)))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewSessionService(bank, hist, repo, sel, logger)
	return bank, hist, repo, svc
}

func TestRun_StandardMode(t *testing.T) {
	_, hist, repo, svc := testFixture(t, 3)

	p := &scriptedPrompter{script: []scriptStep{choose(0), choose(1), choose(0)}}
	result, err := svc.Run(p, session.DefaultConfig())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Summary.Answered != 3 || result.Summary.Correct != 2 {
		t.Errorf("summary = %+v, want answered=3 correct=2", result.Summary)
	}
	if hist.TotalAttempts != 3 || hist.TotalCorrect != 2 {
		t.Errorf("history totals = %d/%d, want 2/3", hist.TotalCorrect, hist.TotalAttempts)
	}
	if len(p.feedbacks) != 3 {
		t.Errorf("expected per-question feedback in standard mode, got %d calls", len(p.feedbacks))
	}
	if len(result.Verify) != 0 {
		t.Error("standard mode must not collect verify answers")
	}
	if repo.saves != 1 {
		t.Errorf("expected exactly 1 save at session end, got %d", repo.saves)
	}
	if len(hist.Sessions) != 1 || hist.Sessions[0].ID == "" {
		t.Errorf("expected one session summary with an ID, got %+v", hist.Sessions)
	}
}

func TestRun_VerifyModeDefersFeedback(t *testing.T) {
	_, hist, _, svc := testFixture(t, 2)

	cfg := session.DefaultConfig()
	cfg.Mode = session.ModeVerify
	p := &scriptedPrompter{script: []scriptStep{choose(1), choose(0)}}

	result, err := svc.Run(p, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(p.feedbacks) != 0 {
		t.Error("verify mode must not reveal feedback per question")
	}
	if len(result.Verify) != 2 {
		t.Fatalf("expected 2 verify entries, got %d", len(result.Verify))
	}
	correctCount := 0
	for _, v := range result.Verify {
		if v.Correct {
			correctCount++
		}
	}
	if correctCount != 1 {
		t.Errorf("expected 1 correct verify entry, got %d", correctCount)
	}
	// History updates in real time even though feedback is deferred.
	if hist.TotalAttempts != 2 {
		t.Errorf("history attempts = %d, want 2", hist.TotalAttempts)
	}
}

func TestRun_SkipRecordsNothing(t *testing.T) {
	_, hist, _, svc := testFixture(t, 2)

	p := &scriptedPrompter{script: []scriptStep{
		{answer: service.Answer{Kind: service.AnswerSkip}},
		choose(0),
	}}
	result, err := svc.Run(p, session.DefaultConfig())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Summary.Answered != 1 {
		t.Errorf("answered = %d, want 1 (skip must not count)", result.Summary.Answered)
	}
	if hist.TotalAttempts != 1 {
		t.Errorf("history attempts = %d, want 1", hist.TotalAttempts)
	}
}

func TestRun_QuitEndsImmediately(t *testing.T) {
	_, hist, repo, svc := testFixture(t, 3)

	p := &scriptedPrompter{script: []scriptStep{
		choose(0),
		{answer: service.Answer{Kind: service.AnswerQuit}},
	}}
	result, err := svc.Run(p, session.DefaultConfig())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Summary.Answered != 1 {
		t.Errorf("answered = %d, want 1", result.Summary.Answered)
	}
	if hist.TotalAttempts != 1 {
		t.Errorf("quit must not record an attempt, history has %d", hist.TotalAttempts)
	}
	// Even a quit session saves on the way out.
	if repo.saves != 1 {
		t.Errorf("expected save on quit, got %d saves", repo.saves)
	}
}

func TestRun_PromptErrorEndsSession(t *testing.T) {
	_, hist, _, svc := testFixture(t, 3)

	p := &scriptedPrompter{script: []scriptStep{
		choose(0),
		{err: errors.New("stdin closed")},
	}}
	result, err := svc.Run(p, session.DefaultConfig())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Summary.Answered != 1 || hist.TotalAttempts != 1 {
		t.Errorf("expected 1 recorded answer before prompt failure")
	}
}

func TestRun_MaxQuestionsCap(t *testing.T) {
	_, _, _, svc := testFixture(t, 5)

	maxQ := 2
	cfg := session.DefaultConfig()
	cfg.MaxQuestions = &maxQ
	p := &scriptedPrompter{script: []scriptStep{choose(0), choose(0), choose(0)}}

	result, err := svc.Run(p, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Summary.Answered != 2 {
		t.Errorf("answered = %d, want cap of 2", result.Summary.Answered)
	}
}

func TestRun_EndsOnExhaustion(t *testing.T) {
	_, _, _, svc := testFixture(t, 2)

	// Script has more answers than the bank has questions; the session must
	// end when the selector is exhausted.
	p := &scriptedPrompter{script: []scriptStep{choose(0), choose(0), choose(0), choose(0)}}
	result, err := svc.Run(p, session.DefaultConfig())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Summary.Answered != 2 {
		t.Errorf("answered = %d, want 2", result.Summary.Answered)
	}
}

func TestRun_RestrictedQuestionTexts(t *testing.T) {
	bank, hist, _, svc := testFixture(t, 4)

	cfg := session.DefaultConfig()
	cfg.QuestionTexts = []string{bank.At(1).Text, bank.At(3).Text}
	p := &scriptedPrompter{script: []scriptStep{choose(0), choose(0), choose(0)}}

	result, err := svc.Run(p, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Summary.Answered != 2 {
		t.Errorf("answered = %d, want 2 (restricted set)", result.Summary.Answered)
	}
	if _, ok := hist.Questions[bank.At(0).Text]; ok {
		t.Error("question outside restriction was recorded")
	}
}

func TestRun_PrunesOrphanedReviewEntries(t *testing.T) {
	bank, hist, _, svc := testFixture(t, 2)

	// One real review entry, one orphan from a question no longer in the bank.
	at := time.Date(2026, 3, 14, 11, 0, 0, 0, time.UTC)
	hist.RecordAnswer(bank.At(0).Text, "Networking", false, at)
	hist.RecordAnswer("question removed from bank", "Networking", false, at)

	cfg := session.DefaultConfig()
	cfg.QuestionTexts = hist.ReviewList()
	p := &scriptedPrompter{script: []scriptStep{choose(0)}}

	result, err := svc.Run(p, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	// Only the real question is askable; the orphan is pruned on detection.
	if result.Summary.Answered != 1 {
		t.Errorf("answered = %d, want 1", result.Summary.Answered)
	}
	if hist.InReview("question removed from bank") {
		t.Error("expected orphaned review entry pruned")
	}
	if hist.InReview(bank.At(0).Text) {
		t.Error("expected review entry cleared after correct answer")
	}
}

func TestRun_EmptyCategory(t *testing.T) {
	_, _, repo, svc := testFixture(t, 2)

	cfg := session.DefaultConfig()
	cfg.Category = "No Such Category"
	p := &scriptedPrompter{}

	result, err := svc.Run(p, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Summary.Answered != 0 {
		t.Errorf("answered = %d, want 0 for empty filter", result.Summary.Answered)
	}
	if repo.saves != 1 {
		t.Errorf("expected save even for empty session, got %d", repo.saves)
	}
}

func TestRun_SaveFailureIsNotFatal(t *testing.T) {
	_, _, repo, svc := testFixture(t, 1)
	repo.saveErr = errors.New("disk full")

	p := &scriptedPrompter{script: []scriptStep{choose(0)}}
	result, err := svc.Run(p, session.DefaultConfig())
	if err != nil {
		t.Fatalf("run must tolerate save failure, got %v", err)
	}
	if result.Summary.Answered != 1 {
		t.Errorf("answered = %d, want 1", result.Summary.Answered)
	}
}
