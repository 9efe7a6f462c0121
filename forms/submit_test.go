package forms

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"fbar-server/models"
	"fbar-server/store"
)

type submissionRepoStub struct {
	store.SubmissionRepository

	inserted  []models.Submission
	insertErr error
}

func (s *submissionRepoStub) InsertSubmission(ctx context.Context, sub models.Submission) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = append(s.inserted, sub)
	return nil
}

func validForm() models.FormState {
	return models.FormState{
		CompanyName: "Örnek Şirket",
		Accounts: []models.BankAccount{
			{
				ID:              "a1",
				Type:            "bank",
				Currency:        "EUR",
				AccountNumber:   "TR-0001",
				MaxValue:        924,
				InstitutionName: "İş Bankası",
				MailingAddress:  "Büyükdere Cad. Şişli/İstanbul",
			},
		},
	}
}

func TestSubmitRejectsEmptyCompanyName(t *testing.T) {
	subs := &submissionRepoStub{}
	m := NewSubmissionManager(subs, &draftRepoStub{}, zerolog.Nop())

	for _, name := range []string{"", "   ", "\t\n"} {
		form := validForm()
		form.CompanyName = name
		_, err := m.Submit(context.Background(), form, "")

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Submit(company=%q) error = %v, want ValidationError", name, err)
		}
		if verr.Field != "companyName" {
			t.Errorf("ValidationError field = %q, want companyName", verr.Field)
		}
	}
	if len(subs.inserted) != 0 {
		t.Errorf("no persistence call expected on validation failure, got %d", len(subs.inserted))
	}
}

func TestSubmitRejectsEmptyAccountList(t *testing.T) {
	subs := &submissionRepoStub{}
	m := NewSubmissionManager(subs, &draftRepoStub{}, zerolog.Nop())

	form := validForm()
	form.Accounts = nil
	_, err := m.Submit(context.Background(), form, "")

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "accounts" {
		t.Fatalf("Submit() error = %v, want ValidationError on accounts", err)
	}
}

func TestSubmitRejectsUnsupportedCurrency(t *testing.T) {
	subs := &submissionRepoStub{}
	m := NewSubmissionManager(subs, &draftRepoStub{}, zerolog.Nop())

	form := validForm()
	form.Accounts[0].Currency = "JPY"
	_, err := m.Submit(context.Background(), form, "")

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "currency" {
		t.Fatalf("Submit() error = %v, want ValidationError on currency", err)
	}
	if len(subs.inserted) != 0 {
		t.Errorf("no persistence call expected on validation failure, got %d", len(subs.inserted))
	}
}

func TestSubmitAllowsEmptyCurrency(t *testing.T) {
	subs := &submissionRepoStub{}
	m := NewSubmissionManager(subs, &draftRepoStub{}, zerolog.Nop())

	form := validForm()
	form.Accounts[0].Currency = ""
	form.Accounts[0].MaxValue = 500
	if _, err := m.Submit(context.Background(), form, ""); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	// No currency means identity conversion.
	if got := subs.inserted[0].Accounts[0].USDValue; got != 500 {
		t.Errorf("usd value = %v, want 500", got)
	}
}

func TestSubmitNormalizesAndPersists(t *testing.T) {
	subs := &submissionRepoStub{}
	m := NewSubmissionManager(subs, &draftRepoStub{}, zerolog.Nop())

	id, err := m.Submit(context.Background(), validForm(), "")
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if len(subs.inserted) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(subs.inserted))
	}

	sub := subs.inserted[0]
	if sub.ID != id || sub.ID == "" {
		t.Errorf("returned id %q does not match stored id %q", id, sub.ID)
	}
	if sub.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", sub.Status)
	}
	if sub.SubmittedAt.IsZero() {
		t.Error("submittedAt not set")
	}
	if sub.CompanyName != "Ornek Sirket" {
		t.Errorf("company name = %q, want transliterated", sub.CompanyName)
	}

	a := sub.Accounts[0]
	if a.InstitutionName != "Is Bankasi" {
		t.Errorf("institution name = %q, want transliterated", a.InstitutionName)
	}
	if a.MailingAddress != "Buyukdere Cad. Sisli/Istanbul" {
		t.Errorf("mailing address = %q, want transliterated", a.MailingAddress)
	}
	// 924 EUR at 0.924 EUR per USD.
	if a.USDValue != 1000 {
		t.Errorf("usd value = %v, want 1000", a.USDValue)
	}
	if a.AccountNumber != "TR-0001" || a.ID != "a1" {
		t.Errorf("non-text fields must carry over unchanged, got %+v", a)
	}
}

func TestSubmitRetiresOriginatingDraft(t *testing.T) {
	subs := &submissionRepoStub{}
	drafts := &draftRepoStub{}
	m := NewSubmissionManager(subs, drafts, zerolog.Nop())

	if _, err := m.Submit(context.Background(), validForm(), "draft-7"); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if len(drafts.deletedIDs) != 1 || drafts.deletedIDs[0] != "draft-7" {
		t.Errorf("draft deletions = %v, want [draft-7]", drafts.deletedIDs)
	}
}

func TestSubmitWithoutDraftSkipsCleanup(t *testing.T) {
	subs := &submissionRepoStub{}
	drafts := &draftRepoStub{}
	m := NewSubmissionManager(subs, drafts, zerolog.Nop())

	if _, err := m.Submit(context.Background(), validForm(), ""); err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if len(drafts.deletedIDs) != 0 {
		t.Errorf("no draft deletion expected, got %v", drafts.deletedIDs)
	}
}

func TestSubmitSwallowsDraftCleanupFailure(t *testing.T) {
	subs := &submissionRepoStub{}
	drafts := &draftRepoStub{deleteErr: errors.New("store unreachable")}
	m := NewSubmissionManager(subs, drafts, zerolog.Nop())

	id, err := m.Submit(context.Background(), validForm(), "draft-7")
	if err != nil {
		t.Fatalf("Submit() must succeed despite cleanup failure, got %v", err)
	}
	if id == "" {
		t.Error("submission id missing")
	}
	if len(subs.inserted) != 1 {
		t.Errorf("submission not stored, inserts = %d", len(subs.inserted))
	}
}

func TestSubmitSurfacesPersistError(t *testing.T) {
	persistErr := errors.New("store unreachable")
	subs := &submissionRepoStub{insertErr: persistErr}
	drafts := &draftRepoStub{}
	m := NewSubmissionManager(subs, drafts, zerolog.Nop())

	_, err := m.Submit(context.Background(), validForm(), "draft-7")
	if !errors.Is(err, persistErr) {
		t.Fatalf("Submit() error = %v, want persist error surfaced", err)
	}
	// A failed submission must not retire the draft.
	if len(drafts.deletedIDs) != 0 {
		t.Errorf("draft must survive a failed submission, deletions = %v", drafts.deletedIDs)
	}
}
