// Package auditors provides an in-memory directory of the field auditors
// allowed to register alternative products. The directory ships embedded
// with the binary and is looked up while the auditor types their name or
// corporate email.
package auditors

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// MinLookupLength is the minimum number of characters required before a
// lookup returns suggestions.
const MinLookupLength = 2

// MaxSuggestions caps the number of entries returned by Lookup.
const MaxSuggestions = 6

//go:embed auditors.json
var auditorsJSON []byte

// Auditor is a single entry of the embedded directory.
type Auditor struct {
	Codigo     int    `json:"codigo"`
	CodigoCDAR int    `json:"codigo_cdar"`
	Nombre     string `json:"nombre"`
	Email      string `json:"email"`
}

// Directory answers suggestion and exact-match queries against the
// embedded auditor list. It is safe for concurrent use.
type Directory struct {
	once    sync.Once
	loadErr error
	entries []Auditor
}

// NewDirectory returns a directory backed by the embedded auditor list.
func NewDirectory() *Directory {
	return &Directory{}
}

func (d *Directory) load() error {
	d.once.Do(func() {
		if err := json.Unmarshal(auditorsJSON, &d.entries); err != nil {
			d.loadErr = fmt.Errorf("auditors: decode embedded directory: %w", err)
		}
	})
	return d.loadErr
}

// Lookup returns up to MaxSuggestions auditors whose name or email
// contains the query, case insensitively. Queries shorter than
// MinLookupLength return no suggestions.
func (d *Directory) Lookup(query string) ([]Auditor, error) {
	if err := d.load(); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < MinLookupLength {
		return []Auditor{}, nil
	}
	matches := make([]Auditor, 0, MaxSuggestions)
	for _, a := range d.entries {
		if strings.Contains(strings.ToLower(a.Nombre), q) || strings.Contains(strings.ToLower(a.Email), q) {
			matches = append(matches, a)
			if len(matches) == MaxSuggestions {
				break
			}
		}
	}
	return matches, nil
}

// ExactMatch returns the auditor whose email equals the given address,
// compared case insensitively after trimming. The second return value
// reports whether a match was found.
func (d *Directory) ExactMatch(email string) (Auditor, bool, error) {
	if err := d.load(); err != nil {
		return Auditor{}, false, err
	}
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return Auditor{}, false, nil
	}
	for _, a := range d.entries {
		if strings.ToLower(a.Email) == needle {
			return a, true, nil
		}
	}
	return Auditor{}, false, nil
}
