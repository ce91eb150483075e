package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"kilnbot/database"
	"kilnbot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository backed by the configured
// database.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	repo := &MongoBookingRepo{
		coll:     db.Collection("bookings"),
		counters: db.Collection("counters"),
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the booking indexes. The partial unique index on
// (date, time) over active documents is what makes concurrent creation safe:
// the second insert for an occupied slot fails with a duplicate key.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}).
				SetName("unique_active_slot"),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("user_created_idx")},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}}, Options: options.Index().SetName("status_date_time_idx")},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}

// nextID assigns the next monotonic booking id from the counters collection.
func (r *MongoBookingRepo) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "bookings"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate booking id: %w", err)
	}
	return doc.Seq, nil
}

// Create inserts a new booking. The id, timestamps, and the active flag are
// assigned here so every writer agrees on them.
func (r *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := r.nextID(ctxWithTimeout)
	if err != nil {
		return err
	}

	now := time.Now()
	b.ID = id
	b.Active = b.Status.Occupies()
	b.CreatedAt = now
	b.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctxWithTimeout, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotConflict
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by id, or (nil, nil) when absent.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %d: %w", id, err)
	}
	return &b, nil
}

// UpdateStatus sets status, recomputes the active flag, and bumps updated_at.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id int64, status models.BookingStatus) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     status,
		"active":     status.Occupies(),
		"updated_at": time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %d not found", id)
	}
	return nil
}

// Delete removes a booking unconditionally.
func (r *MongoBookingRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctxWithTimeout, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete booking %d: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(sort)
	cursor, err := r.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListPending returns pending bookings, newest first.
func (r *MongoBookingRepo) ListPending(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"status": models.StatusPending}, bson.D{{Key: "created_at", Value: -1}})
}

// ListConfirmed returns confirmed bookings ordered by date then time.
func (r *MongoBookingRepo) ListConfirmed(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"status": models.StatusConfirmed}, bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
}

// ListAll returns every booking, pending first, then confirmed, then
// rejected, newest first within each group.
func (r *MongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$addFields", Value: bson.D{{Key: "statusRank", Value: bson.D{{Key: "$switch", Value: bson.D{
			{Key: "branches", Value: bson.A{
				bson.D{{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{"$status", models.StatusPending}}}}, {Key: "then", Value: 1}},
				bson.D{{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{"$status", models.StatusConfirmed}}}}, {Key: "then", Value: 2}},
				bson.D{{Key: "case", Value: bson.D{{Key: "$eq", Value: bson.A{"$status", models.StatusRejected}}}}, {Key: "then", Value: 3}},
			}},
			{Key: "default", Value: 4},
		}}}}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "statusRank", Value: 1}, {Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "statusRank", Value: 0}}}},
	}

	cursor, err := r.coll.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListByUser returns a requester's history, newest first.
func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"user_id": userID}, bson.D{{Key: "created_at", Value: -1}})
}

// ListByDateRange returns active bookings within [start, end] ordered by
// date then time. ISO date strings compare correctly lexicographically.
func (r *MongoBookingRepo) ListByDateRange(ctx context.Context, start, end string) ([]models.Booking, error) {
	filter := bson.M{
		"date":   bson.M{"$gte": start, "$lte": end},
		"active": true,
	}
	return r.find(ctx, filter, bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
}

// BookedSlots returns the set of occupied start times for a date.
func (r *MongoBookingRepo) BookedSlots(ctx context.Context, date string) (map[string]bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctxWithTimeout, "time", bson.M{"date": date, "active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booked slots for %s: %w", date, err)
	}

	slots := make(map[string]bool, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			slots[s] = true
		}
	}
	return slots, nil
}

// IsSlotAvailable reports whether no active booking holds (date, time).
func (r *MongoBookingRepo) IsSlotAvailable(ctx context.Context, date, tm string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctxWithTimeout, bson.M{"date": date, "time": tm, "active": true})
	if err != nil {
		return false, fmt.Errorf("failed to check slot %s %s: %w", date, tm, err)
	}
	return count == 0, nil
}

// MarkReminderSent sets the reminder flag for the given kind. The update is
// naturally idempotent.
func (r *MongoBookingRepo) MarkReminderSent(ctx context.Context, id int64, kind models.ReminderKind) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var field string
	switch kind {
	case models.ReminderDay:
		field = "day_reminder_sent"
	case models.ReminderHour:
		field = "hour_reminder_sent"
	default:
		return fmt.Errorf("unknown reminder kind %q", kind)
	}

	_, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": id}, bson.M{"$set": bson.M{field: true}})
	if err != nil {
		return fmt.Errorf("failed to mark %s reminder for booking %d: %w", kind, id, err)
	}
	return nil
}

// Summary returns per-status counts plus the total.
func (r *MongoBookingRepo) Summary(ctx context.Context) (*models.BookingSummary, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	summary := &models.BookingSummary{}
	for cursor.Next(ctxWithTimeout) {
		var row struct {
			Status models.BookingStatus `bson:"_id"`
			Count  int64                `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode summary row: %w", err)
		}
		switch row.Status {
		case models.StatusPending:
			summary.Pending = row.Count
		case models.StatusConfirmed:
			summary.Confirmed = row.Count
		case models.StatusRejected:
			summary.Rejected = row.Count
		}
		summary.Total += row.Count
	}
	return summary, nil
}
