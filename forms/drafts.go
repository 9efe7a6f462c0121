// Package forms owns the draft save/resume protocol and the submission
// lifecycle built on top of the document store.
package forms

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	uuid "github.com/satori/go.uuid"

	"fbar-server/models"
	"fbar-server/store"
)

// codeAttempts bounds the collision retry loop when allocating a resume code.
// The key space holds 9000 codes, so hitting the bound means the draft
// collection is effectively saturated.
const codeAttempts = 10

var (
	// ErrDraftNotFound means no saved draft matches the given resume code.
	ErrDraftNotFound = errors.New("forms: no draft matches that code")
	// ErrCodeSpaceExhausted means a free resume code could not be found
	// within the retry bound.
	ErrCodeSpaceExhausted = errors.New("forms: resume code space exhausted")
)

// GenerateCode picks a uniform random 4-digit resume code in [1000, 9999].
func GenerateCode() string {
	return strconv.Itoa(1000 + rand.Intn(9000))
}

// DraftManager creates and redeems saved form drafts.
type DraftManager struct {
	repo store.DraftRepository
	log  zerolog.Logger
}

// NewDraftManager returns a manager backed by the given draft repository.
func NewDraftManager(repo store.DraftRepository, log zerolog.Logger) *DraftManager {
	return &DraftManager{repo: repo, log: log}
}

// Create snapshots the form under a fresh resume code and returns the code.
// Each candidate code is checked against live drafts before the insert;
// collisions get a new code, bounded at codeAttempts tries. Text is stored
// exactly as entered: transliteration happens at submit time, not on save.
// The returned code is shown to the filer once; the store is its only
// durable record.
func (m *DraftManager) Create(ctx context.Context, form models.FormState) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := GenerateCode()
		inUse, err := m.repo.CodeInUse(ctx, code)
		if err != nil {
			return "", err
		}
		if inUse {
			m.log.Debug().Str("code", code).Msg("resume code collision, retrying")
			continue
		}
		draft := models.Draft{
			ID:          uuid.NewV4().String(),
			ResumeCode:  code,
			CompanyName: form.CompanyName,
			Accounts:    form.Accounts,
			CreatedAt:   time.Now().UTC(),
		}
		if err := m.repo.InsertDraft(ctx, draft); err != nil {
			return "", err
		}
		m.log.Info().Str("draft_id", draft.ID).Msg("draft saved")
		return code, nil
	}
	return "", ErrCodeSpaceExhausted
}

// Resume fetches the draft matching the code. The draft stays in place: it is
// only retired by a later submission that carries its id forward, so the same
// code can be redeemed repeatedly until then.
func (m *DraftManager) Resume(ctx context.Context, code string) (models.Draft, error) {
	d, err := m.repo.FindDraftByCode(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return models.Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return models.Draft{}, err
	}
	return d, nil
}
