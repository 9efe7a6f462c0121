// Package store is the document-store boundary. It defines the repository
// contracts the lifecycle managers depend on and provides the MongoDB
// implementation backing the fbar_drafts and fbar_submissions collections.
package store

import (
	"context"
	"errors"

	"fbar-server/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("store: document not found")

// DraftRepository manages saved form drafts keyed by resume code.
type DraftRepository interface {
	InsertDraft(ctx context.Context, d models.Draft) error
	CodeInUse(ctx context.Context, code string) (bool, error)
	// FindDraftByCode returns the first draft whose resumeCode matches
	// exactly, or ErrNotFound.
	FindDraftByCode(ctx context.Context, code string) (models.Draft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// SubmissionRepository manages finalized filings and the review console's
// live view of them.
type SubmissionRepository interface {
	InsertSubmission(ctx context.Context, s models.Submission) error
	// ListSubmissions returns every submission ordered by submittedAt
	// descending.
	ListSubmissions(ctx context.Context) ([]models.Submission, error)
	FindSubmissionsByIDs(ctx context.Context, ids []string) ([]models.Submission, error)
	UpdateSubmissionStatus(ctx context.Context, id, status string) error
	DeleteSubmission(ctx context.Context, id string) error
	// WatchSubmissions emits a full re-sorted collection snapshot on every
	// change notification, starting with the current contents. The channel
	// closes when ctx is cancelled or the underlying stream ends.
	WatchSubmissions(ctx context.Context) (<-chan []models.Submission, error)
}
