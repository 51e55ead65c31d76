// Package corpus loads the local evidence library (checklists, rules,
// labeled exemplars) and splits it into retrievable passages.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is a single text file loaded from the data directory.
type Document struct {
	Name string
	Text string
}

// Passage is the unit of retrieval: a bounded-length chunk of a document.
type Passage struct {
	Text     string
	SourceID string
	Tag      Category
}

// Subdirectories scanned under the data root, in order. The root itself is
// scanned first.
var subdirs = []string{"checklists", "exemplars", "playbooks", "rules", "resources", "studies"}

// Load reads every .txt file from the root directory and the known
// subdirectories. Unreadable files are skipped, invalid UTF-8 bytes are
// dropped and whitespace-only files are excluded. Documents are returned in
// lexicographic filename order; an empty or missing directory yields an
// empty list.
func Load(root string) ([]Document, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("data directory is not configured")
	}

	patterns := make([]string, 0, len(subdirs)+1)
	patterns = append(patterns, filepath.Join(root, "*.txt"))
	for _, sub := range subdirs {
		patterns = append(patterns, filepath.Join(root, sub, "*.txt"))
	}

	var docs []Document
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		sort.Strings(matches)
		for _, path := range matches {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			text := strings.TrimSpace(strings.ToValidUTF8(string(data), ""))
			if text == "" {
				continue
			}
			docs = append(docs, Document{Name: filepath.Base(path), Text: text})
		}
	}

	return docs, nil
}

// Build chunks every document and concatenates the results into the passage
// corpus, preserving document order. Each passage carries a stable source id
// of the form "<filename>#chunk<ordinal>" and the category of its source
// document.
func Build(docs []Document, size, overlap int) []Passage {
	var passages []Passage
	for _, doc := range docs {
		tag := Tag(doc.Name)
		for idx, text := range Chunk(doc.Text, size, overlap) {
			passages = append(passages, Passage{
				Text:     text,
				SourceID: fmt.Sprintf("%s#chunk%d", doc.Name, idx),
				Tag:      tag,
			})
		}
	}
	return passages
}
