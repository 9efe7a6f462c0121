package forms

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	uuid "github.com/satori/go.uuid"

	"fbar-server/currency"
	"fbar-server/models"
	"fbar-server/store"
	"fbar-server/translit"
)

// ValidationError reports a required field the filer left empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "forms: required field missing: " + e.Field
}

// SubmissionManager finalizes form state into persisted submissions.
type SubmissionManager struct {
	subs   store.SubmissionRepository
	drafts store.DraftRepository
	log    zerolog.Logger
}

// NewSubmissionManager returns a manager over the submission and draft
// repositories.
func NewSubmissionManager(subs store.SubmissionRepository, drafts store.DraftRepository, log zerolog.Logger) *SubmissionManager {
	return &SubmissionManager{subs: subs, drafts: drafts, log: log}
}

// Submit validates the form, normalizes its free text, recomputes every
// account's USD value, and persists a pending submission in a single write.
// When the form came from a saved draft, the draft is deleted afterwards; a
// cleanup failure is logged and swallowed, so submission success never
// depends on it.
func (m *SubmissionManager) Submit(ctx context.Context, form models.FormState, draftID string) (string, error) {
	if strings.TrimSpace(form.CompanyName) == "" {
		return "", &ValidationError{Field: "companyName"}
	}
	if len(form.Accounts) == 0 {
		return "", &ValidationError{Field: "accounts"}
	}
	for _, a := range form.Accounts {
		// An empty currency is an account the filer has not finished; it
		// converts at identity. Anything else must come from the supported set.
		if a.Currency != "" && !currency.Supported(a.Currency) {
			return "", &ValidationError{Field: "currency"}
		}
	}

	accounts := make([]models.BankAccount, len(form.Accounts))
	for i, a := range form.Accounts {
		// Fields were normalized live as the filer typed; transliteration is
		// idempotent, so applying it again here is safe and catches anything
		// that slipped through.
		a.InstitutionName = translit.Transliterate(a.InstitutionName)
		a.MailingAddress = translit.Transliterate(a.MailingAddress)
		a.USDValue = currency.USDFloat(a.MaxValue, a.Currency)
		accounts[i] = a
	}

	sub := models.Submission{
		ID:          uuid.NewV4().String(),
		CompanyName: translit.Transliterate(form.CompanyName),
		Accounts:    accounts,
		SubmittedAt: time.Now().UTC(),
		Status:      models.StatusPending,
	}
	if err := m.subs.InsertSubmission(ctx, sub); err != nil {
		return "", err
	}
	m.log.Info().Str("submission_id", sub.ID).Int("accounts", len(accounts)).Msg("submission stored")

	if draftID != "" {
		if err := m.drafts.DeleteDraft(ctx, draftID); err != nil {
			m.log.Warn().Err(err).Str("draft_id", draftID).
				Msg("submission stored but draft cleanup failed")
		}
	}
	return sub.ID, nil
}
