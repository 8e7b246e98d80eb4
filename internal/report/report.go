// Package report derives read-only statistics views from the history store.
package report

import (
	"sort"

	"github.com/tuxprep/trainer/internal/domain/history"
)

// CategorySort picks the ordering of a category report.
type CategorySort int

const (
	// ByName sorts categories alphabetically.
	ByName CategorySort = iota
	// ByWeakest sorts ascending accuracy, ties broken by more attempts first.
	ByWeakest
)

// CategoryRow is one line of a category report.
type CategoryRow struct {
	Category string
	Attempts int
	Correct  int
	Accuracy float64
}

// QuestionRow is one line of a question report. LastOutcome is "correct",
// "incorrect", or "n/a" for a question with no recorded attempts.
type QuestionRow struct {
	Text        string
	Attempts    int
	Correct     int
	Accuracy    float64
	LastOutcome string
}

// Overall returns totalCorrect/totalAttempts, or 0 for an empty store.
func Overall(st *history.Store) float64 {
	if st.TotalAttempts == 0 {
		return 0
	}
	return float64(st.TotalCorrect) / float64(st.TotalAttempts)
}

// Categories reports every category with at least one attempt. Orphaned
// entries (categories no longer in the bank) are included as-is; the store
// is the source of truth for what was practiced.
func Categories(st *history.Store, order CategorySort) []CategoryRow {
	rows := make([]CategoryRow, 0, len(st.Categories))
	for name, cs := range st.Categories {
		if cs.Attempts == 0 {
			continue
		}
		rows = append(rows, CategoryRow{
			Category: name,
			Attempts: cs.Attempts,
			Correct:  cs.Correct,
			Accuracy: float64(cs.Correct) / float64(cs.Attempts),
		})
	}
	sortCategories(rows, order)
	return rows
}

func sortCategories(rows []CategoryRow, order CategorySort) {
	switch order {
	case ByWeakest:
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Accuracy != rows[j].Accuracy {
				return rows[i].Accuracy < rows[j].Accuracy
			}
			if rows[i].Attempts != rows[j].Attempts {
				return rows[i].Attempts > rows[j].Attempts
			}
			return rows[i].Category < rows[j].Category
		})
	default:
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Category < rows[j].Category
		})
	}
}

// Questions reports every question with recorded attempts, sorted by text.
// Entries orphaned by bank changes are still reported.
func Questions(st *history.Store) []QuestionRow {
	rows := make([]QuestionRow, 0, len(st.Questions))
	for text, qs := range st.Questions {
		row := QuestionRow{
			Text:        text,
			Attempts:    qs.Attempts,
			Correct:     qs.Correct,
			Accuracy:    qs.Accuracy(),
			LastOutcome: "n/a",
		}
		if len(qs.History) > 0 {
			if qs.History[len(qs.History)-1].Correct {
				row.LastOutcome = "correct"
			} else {
				row.LastOutcome = "incorrect"
			}
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Text < rows[j].Text
	})
	return rows
}

// WeakCategories returns the categories with at least minAttempts attempts
// and accuracy below threshold, weakest first. These drive the "areas for
// improvement" view.
func WeakCategories(st *history.Store, minAttempts int, threshold float64) []CategoryRow {
	all := Categories(st, ByWeakest)
	weak := make([]CategoryRow, 0, len(all))
	for _, row := range all {
		if row.Attempts >= minAttempts && row.Accuracy < threshold {
			weak = append(weak, row)
		}
	}
	return weak
}
