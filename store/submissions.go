package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fbar-server/models"
)

// InsertSubmission persists a finalized filing as a single write.
func (m *Mongo) InsertSubmission(ctx context.Context, s models.Submission) error {
	_, err := m.submissions().InsertOne(ctx, s)
	return err
}

func (m *Mongo) findSubmissions(ctx context.Context, filter bson.M) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cur, err := m.submissions().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	subs := []models.Submission{}
	if err := cur.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// ListSubmissions returns every submission, newest first.
func (m *Mongo) ListSubmissions(ctx context.Context) ([]models.Submission, error) {
	return m.findSubmissions(ctx, bson.M{})
}

// FindSubmissionsByIDs returns the submissions matching the given ids,
// newest first. Unknown ids are simply absent from the result.
func (m *Mongo) FindSubmissionsByIDs(ctx context.Context, ids []string) ([]models.Submission, error) {
	if len(ids) == 0 {
		return []models.Submission{}, nil
	}
	return m.findSubmissions(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// UpdateSubmissionStatus sets the review status directly. Any recognized
// status may replace any other; concurrent operators race last-write-wins.
func (m *Mongo) UpdateSubmissionStatus(ctx context.Context, id, status string) error {
	res, err := m.submissions().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSubmission removes a filing permanently.
func (m *Mongo) DeleteSubmission(ctx context.Context, id string) error {
	res, err := m.submissions().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// WatchSubmissions opens a change stream on the submission collection and
// emits a fresh full snapshot per change notification, starting with the
// current contents. Consumers replace their local list wholesale on each
// emission; cancelling ctx tears the stream down and closes the channel.
func (m *Mongo) WatchSubmissions(ctx context.Context) (<-chan []models.Submission, error) {
	stream, err := m.submissions().Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	out := make(chan []models.Submission, 1)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		snap, err := m.ListSubmissions(ctx)
		if err != nil {
			m.log.Error().Err(err).Msg("initial submission snapshot failed")
			return
		}
		select {
		case out <- snap:
		case <-ctx.Done():
			return
		}

		for stream.Next(ctx) {
			snap, err := m.ListSubmissions(ctx)
			if err != nil {
				m.log.Warn().Err(err).Msg("submission snapshot refresh failed")
				continue
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			m.log.Warn().Err(err).Msg("submission change stream ended")
		}
	}()
	return out, nil
}
