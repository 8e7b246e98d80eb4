package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tuxprep/trainer/internal/domain/question"
)

// pack is the on-disk shape of a question pack file.
type pack struct {
	Category  string `yaml:"category"`
	Questions []struct {
		Text        string   `yaml:"text"`
		Options     []string `yaml:"options"`
		Answer      int      `yaml:"answer"` // 0-based index into options
		Explanation string   `yaml:"explanation"`
		Category    string   `yaml:"category"` // optional per-question override
	} `yaml:"questions"`
}

// LoadPack parses a single YAML question-pack file. Every question is
// validated the same way bank construction validates records, so a bad pack
// fails loudly at startup instead of corrupting a session later.
func LoadPack(path string) ([]question.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pack %s: %w", path, err)
	}

	var p pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse pack %s: %w", path, err)
	}

	records := make([]question.Record, 0, len(p.Questions))
	for i, q := range p.Questions {
		category := q.Category
		if category == "" {
			category = p.Category
		}
		r := question.Record{
			Text:         q.Text,
			Options:      q.Options,
			CorrectIndex: q.Answer,
			Category:     category,
			Explanation:  q.Explanation,
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("pack %s, question %d: %w", path, i+1, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// LoadDir loads every .yaml/.yml pack in a directory, in name order. A
// missing directory is not an error: packs are optional.
func LoadDir(dir string) ([]question.Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read pack directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var records []question.Record
	for _, name := range names {
		rs, err := LoadPack(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		records = append(records, rs...)
	}
	return records, nil
}
