package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fbar-server/models"
)

// InsertDraft persists a new draft snapshot.
func (m *Mongo) InsertDraft(ctx context.Context, d models.Draft) error {
	_, err := m.drafts().InsertOne(ctx, d)
	return err
}

// CodeInUse reports whether any live draft already holds the given resume
// code. Uniqueness is read-then-write only; there is no store-level
// constraint on resumeCode.
func (m *Mongo) CodeInUse(ctx context.Context, code string) (bool, error) {
	n, err := m.drafts().CountDocuments(ctx, bson.M{"resumeCode": code})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindDraftByCode looks up exactly one draft by resume code. When duplicate
// codes exist the store's first match wins; duplicates are not flagged.
func (m *Mongo) FindDraftByCode(ctx context.Context, code string) (models.Draft, error) {
	var d models.Draft
	err := m.drafts().FindOne(ctx, bson.M{"resumeCode": code}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Draft{}, ErrNotFound
	}
	if err != nil {
		return models.Draft{}, err
	}
	return d, nil
}

// DeleteDraft removes a draft by id. Deleting an already-removed draft is
// reported as ErrNotFound.
func (m *Mongo) DeleteDraft(ctx context.Context, id string) error {
	res, err := m.drafts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
