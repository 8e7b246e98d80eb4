// Package export writes the read-only study artifacts: a Markdown listing of
// the question bank and a raw copy of the persisted history document.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tuxprep/trainer/internal/domain/history"
	"github.com/tuxprep/trainer/internal/domain/question"
)

// optionLetter converts an option index to its display letter (0 -> A).
func optionLetter(i int) string {
	return string(rune('A' + i))
}

// Questions writes the full bank as a human-readable Markdown document:
// numbered questions with category and lettered options, then an answers
// section with the correct letter and explanation. The output is not meant
// to be re-imported.
func Questions(w io.Writer, bank *question.Bank) error {
	if _, err := fmt.Fprintf(w, "# Question Bank\n\nExported %s\n\n## Questions\n\n",
		time.Now().UTC().Format("2006-01-02")); err != nil {
		return fmt.Errorf("export questions: %w", err)
	}

	for i, q := range bank.Records() {
		if _, err := fmt.Fprintf(w, "**%d.** [%s] %s\n\n", i+1, q.Category, q.Text); err != nil {
			return fmt.Errorf("export questions: %w", err)
		}
		for j, opt := range q.Options {
			if _, err := fmt.Fprintf(w, "   %s. %s\n", optionLetter(j), opt); err != nil {
				return fmt.Errorf("export questions: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("export questions: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w, "## Answers\n\n"); err != nil {
		return fmt.Errorf("export questions: %w", err)
	}
	for i, q := range bank.Records() {
		if _, err := fmt.Fprintf(w, "**%d.** %s — %s\n\n", i+1, optionLetter(q.CorrectIndex), q.Explanation); err != nil {
			return fmt.Errorf("export questions: %w", err)
		}
	}
	return nil
}

// QuestionsToFile is Questions writing to a created file.
func QuestionsToFile(path string, bank *question.Bank) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export questions: %w", err)
	}
	defer f.Close()
	return Questions(f, bank)
}

// History writes the current history aggregate as the persisted JSON
// document to a user-chosen path, regardless of which backend is active.
func History(st *history.Store, path string) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	return nil
}
