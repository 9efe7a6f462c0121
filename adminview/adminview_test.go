package adminview

import (
	"testing"

	"fbar-server/models"
)

func fixtures() []models.Submission {
	return []models.Submission{
		{
			ID:          "s1",
			CompanyName: "Acme Holdings",
			Accounts: []models.BankAccount{
				{InstitutionName: "First National", AccountNumber: "111-222"},
			},
		},
		{
			ID:          "s2",
			CompanyName: "Globex",
			Accounts: []models.BankAccount{
				{InstitutionName: "Ziraat Bankasi", AccountNumber: "TR-9000"},
				{InstitutionName: "Credit Lyonnais", AccountNumber: "FR-7777"},
			},
		},
		{
			ID:          "s3",
			CompanyName: "Initech",
			Accounts:    []models.BankAccount{{InstitutionName: "Chase", AccountNumber: "55501"}},
		},
	}
}

func ids(subs []models.Submission) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}

func TestFilterEmptyQueryMatchesAll(t *testing.T) {
	got := Filter(fixtures(), "")
	if len(got) != 3 {
		t.Fatalf("empty query matched %d, want 3", len(got))
	}
}

func TestFilterByInstitutionNameOnly(t *testing.T) {
	// "ziraat" appears only in an account's institution name, not in any
	// company name; the submission must still match.
	got := Filter(fixtures(), "ziraat")
	if len(got) != 1 || got[0].ID != "s2" {
		t.Fatalf("Filter(ziraat) = %v, want [s2]", ids(got))
	}
}

func TestFilterByAccountNumber(t *testing.T) {
	got := Filter(fixtures(), "fr-77")
	if len(got) != 1 || got[0].ID != "s2" {
		t.Fatalf("Filter(fr-77) = %v, want [s2]", ids(got))
	}
}

func TestFilterCaseInsensitiveCompanyName(t *testing.T) {
	got := Filter(fixtures(), "ACME")
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("Filter(ACME) = %v, want [s1]", ids(got))
	}
}

func TestFilterNoMatch(t *testing.T) {
	if got := Filter(fixtures(), "nonexistent"); len(got) != 0 {
		t.Fatalf("Filter(nonexistent) = %v, want empty", ids(got))
	}
}

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("s1")
	if !sel.Has("s1") {
		t.Fatal("s1 should be selected after toggle")
	}
	sel.Toggle("s1")
	if sel.Has("s1") {
		t.Fatal("s1 should be deselected after second toggle")
	}
}

func TestSelectionToggleAll(t *testing.T) {
	subs := fixtures()
	sel := NewSelection()

	sel.ToggleAll(subs)
	if len(sel) != 3 {
		t.Fatalf("select-all selected %d, want 3", len(sel))
	}

	// All selected: toggling again clears everything.
	sel.ToggleAll(subs)
	if len(sel) != 0 {
		t.Fatalf("second toggle-all left %d selected, want 0", len(sel))
	}
}

func TestSelectionToggleAllFromPartial(t *testing.T) {
	subs := fixtures()
	sel := NewSelection()
	sel.Toggle("s2")

	sel.ToggleAll(subs)
	if len(sel) != 3 {
		t.Fatalf("toggle-all from partial selected %d, want all 3", len(sel))
	}
}

func TestSelectionToggleAllTracksCurrentFilter(t *testing.T) {
	filtered := Filter(fixtures(), "ziraat")
	sel := NewSelection()
	sel.Toggle("s1") // selected outside the current filter

	sel.ToggleAll(filtered)
	got := sel.IDs()
	if len(got) != 1 || got[0] != "s2" {
		t.Fatalf("toggle-all over filter = %v, want exactly [s2]", got)
	}
}

func TestSelectionToggleAllClearsOnFullCoverage(t *testing.T) {
	filtered := Filter(fixtures(), "ziraat")
	sel := NewSelection()
	sel.Toggle("s1") // stale pick from a previous, wider filter
	sel.Toggle("s2")

	// Every visible submission is selected, so toggle-all clears, stale
	// picks included.
	sel.ToggleAll(filtered)
	if len(sel) != 0 {
		t.Fatalf("toggle-all with full coverage left %v selected, want none", sel.IDs())
	}
}

func TestSelectionDrop(t *testing.T) {
	sel := NewSelection()
	sel.Toggle("s1")
	sel.Toggle("s2")
	sel.Drop("s1")
	got := sel.IDs()
	if len(got) != 1 || got[0] != "s2" {
		t.Fatalf("after drop, selection = %v, want [s2]", got)
	}
}
