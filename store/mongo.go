package store

import (
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	draftsCollection      = "fbar_drafts"
	submissionsCollection = "fbar_submissions"
)

// Mongo implements DraftRepository and SubmissionRepository against a MongoDB
// database.
type Mongo struct {
	db  *mongo.Database
	log zerolog.Logger
}

// NewMongo wraps an initialized database handle.
func NewMongo(db *mongo.Database, log zerolog.Logger) *Mongo {
	return &Mongo{db: db, log: log}
}

func (m *Mongo) drafts() *mongo.Collection {
	return m.db.Collection(draftsCollection)
}

func (m *Mongo) submissions() *mongo.Collection {
	return m.db.Collection(submissionsCollection)
}
