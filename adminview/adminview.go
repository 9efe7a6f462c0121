// Package adminview holds the pure logic behind the review console: search
// filtering and the operator's selection set. State lives with the caller;
// every function here works on explicit snapshots.
package adminview

import (
	"sort"
	"strings"

	"fbar-server/models"
)

// Filter returns the submissions whose company name, any institution name,
// or any account number contains query, case-insensitively. An empty query
// matches everything.
func Filter(subs []models.Submission, query string) []models.Submission {
	q := strings.ToLower(query)
	out := make([]models.Submission, 0, len(subs))
	for _, s := range subs {
		if matches(s, q) {
			out = append(out, s)
		}
	}
	return out
}

func matches(s models.Submission, q string) bool {
	if strings.Contains(strings.ToLower(s.CompanyName), q) {
		return true
	}
	for _, a := range s.Accounts {
		if strings.Contains(strings.ToLower(a.InstitutionName), q) ||
			strings.Contains(strings.ToLower(a.AccountNumber), q) {
			return true
		}
	}
	return false
}

// Selection is the set of submission ids an operator has checked for export.
type Selection map[string]struct{}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{}
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips a single id in or out of the selection.
func (s Selection) Toggle(id string) {
	if s.Has(id) {
		delete(s, id)
	} else {
		s[id] = struct{}{}
	}
}

// Drop removes an id, typically after the submission was deleted.
func (s Selection) Drop(id string) {
	delete(s, id)
}

// ToggleAll flips the whole current filter: when the selection already covers
// every visible submission it is cleared, otherwise it becomes exactly the
// visible set.
func (s Selection) ToggleAll(visible []models.Submission) {
	allSelected := true
	for _, sub := range visible {
		if !s.Has(sub.ID) {
			allSelected = false
			break
		}
	}
	for id := range s {
		delete(s, id)
	}
	if allSelected {
		return
	}
	for _, sub := range visible {
		s[sub.ID] = struct{}{}
	}
}

// IDs returns the selected ids in stable order.
func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
