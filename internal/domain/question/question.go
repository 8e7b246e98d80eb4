package question

import (
	"fmt"
	"sort"
)

// Record is a single multiple-choice question. The prompt text doubles as the
// identity key for history lookups, so it must be unique within a bank.
type Record struct {
	Text         string
	Options      []string
	CorrectIndex int
	Category     string
	Explanation  string
}

// Validate checks the structural invariants of a record.
func (r Record) Validate() error {
	if r.Text == "" {
		return fmt.Errorf("question text cannot be empty")
	}
	if r.Category == "" {
		return fmt.Errorf("question %q has no category", r.Text)
	}
	if len(r.Options) < 2 {
		return fmt.Errorf("question %q needs at least 2 options, got %d", r.Text, len(r.Options))
	}
	if r.CorrectIndex < 0 || r.CorrectIndex >= len(r.Options) {
		return fmt.Errorf("question %q has correct index %d out of range [0,%d)", r.Text, r.CorrectIndex, len(r.Options))
	}
	return nil
}

// Bank is the immutable, ordered collection of all questions available to the
// application. It is built once at startup and never mutated afterwards.
type Bank struct {
	records    []Record
	categories []string
	byText     map[string]int
}

// NewBank validates every record and builds the bank. Duplicate question
// texts are rejected because text is the history key.
func NewBank(records []Record) (*Bank, error) {
	byText := make(map[string]int, len(records))
	catSet := make(map[string]struct{})

	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("bank entry %d: %w", i, err)
		}
		if _, dup := byText[r.Text]; dup {
			return nil, fmt.Errorf("bank entry %d: duplicate question text %q", i, r.Text)
		}
		byText[r.Text] = i
		catSet[r.Category] = struct{}{}
	}

	categories := make([]string, 0, len(catSet))
	for c := range catSet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	return &Bank{
		records:    records,
		categories: categories,
		byText:     byText,
	}, nil
}

// Len returns the number of questions in the bank.
func (b *Bank) Len() int {
	return len(b.records)
}

// At returns the record at the given bank index.
func (b *Bank) At(i int) Record {
	return b.records[i]
}

// Records returns the full ordered question list.
func (b *Bank) Records() []Record {
	return b.records
}

// Categories returns the distinct category names, sorted.
func (b *Bank) Categories() []string {
	return b.categories
}

// Indices returns the bank indices whose category matches the filter.
// An empty filter matches every question.
func (b *Bank) Indices(category string) []int {
	indices := make([]int, 0, len(b.records))
	for i, r := range b.records {
		if category == "" || r.Category == category {
			indices = append(indices, i)
		}
	}
	return indices
}

// IndexOf resolves a question text to its bank index.
func (b *Bank) IndexOf(text string) (int, bool) {
	i, ok := b.byText[text]
	return i, ok
}
