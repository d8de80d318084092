package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/out"
	"helpdesk_server/pkg/apperr"
)

// =============================================================================
// MongoDB Ticket Adapter
// =============================================================================

const collectionTickets = "tickets"

// TicketAdapter implements out.TicketRepository using MongoDB.
type TicketAdapter struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewTicketAdapter creates a new MongoDB ticket adapter.
func NewTicketAdapter(db *mongo.Database) *TicketAdapter {
	collection := db.Collection(collectionTickets)
	return &TicketAdapter{
		db:         db,
		collection: collection,
	}
}

// EnsureIndexes creates necessary indexes for the collection.
func (a *TicketAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "enrichment.predicted_category", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "priority", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// =============================================================================
// Single Operations
// =============================================================================

// Insert stores a new ticket.
func (a *TicketAdapter) Insert(ctx context.Context, ticket *domain.Ticket) error {
	_, err := a.collection.InsertOne(ctx, ticket)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict(fmt.Sprintf("ticket %s already exists", ticket.ID))
		}
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

// GetByID retrieves a ticket by ID.
func (a *TicketAdapter) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	filter := bson.M{"id": id}

	err := a.collection.FindOne(ctx, filter).Decode(&ticket)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound(fmt.Sprintf("ticket %s", id))
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return &ticket, nil
}

// Update replaces the stored ticket. The caller owns timestamp maintenance.
func (a *TicketAdapter) Update(ctx context.Context, ticket *domain.Ticket) error {
	filter := bson.M{"id": ticket.ID}

	result, err := a.collection.ReplaceOne(ctx, filter, ticket)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound(fmt.Sprintf("ticket %s", ticket.ID))
	}

	return nil
}

// Delete removes a ticket.
func (a *TicketAdapter) Delete(ctx context.Context, id string) error {
	filter := bson.M{"id": id}

	result, err := a.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound(fmt.Sprintf("ticket %s", id))
	}

	return nil
}

// =============================================================================
// Query Operations
// =============================================================================

// List retrieves tickets matching the filter, newest first, plus the total
// count before pagination.
func (a *TicketAdapter) List(ctx context.Context, filter *domain.TicketFilter) ([]*domain.Ticket, int64, error) {
	query := bson.M{}

	if filter != nil {
		if filter.Status != "" {
			query["status"] = string(filter.Status)
		}
		if filter.Category != "" {
			query["enrichment.predicted_category"] = string(filter.Category)
		}
		if filter.Priority != "" {
			query["priority"] = string(filter.Priority)
		}
		if filter.Escalated != nil {
			query["enrichment.should_escalate"] = *filter.Escalated
		}
	}

	total, err := a.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter != nil {
		if filter.Limit > 0 {
			findOpts.SetLimit(int64(filter.Limit))
		}
		if filter.Offset > 0 {
			findOpts.SetSkip(int64(filter.Offset))
		}
	}

	cursor, err := a.collection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []*domain.Ticket
	for cursor.Next(ctx) {
		var ticket domain.Ticket
		if err := cursor.Decode(&ticket); err != nil {
			return nil, 0, fmt.Errorf("failed to decode ticket: %w", err)
		}
		tickets = append(tickets, &ticket)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return tickets, total, nil
}

// =============================================================================
// Stats
// =============================================================================

// Stats aggregates ticket counts by status, category, and priority.
func (a *TicketAdapter) Stats(ctx context.Context) (*domain.TicketStats, error) {
	stats := &domain.TicketStats{
		ByStatus:   make(map[domain.TicketStatus]int64),
		ByCategory: make(map[domain.TicketCategory]int64),
		ByPriority: make(map[domain.Priority]int64),
	}

	total, err := a.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	stats.Total = total

	if err := a.groupCounts(ctx, "$status", func(key string, count int64) {
		stats.ByStatus[domain.TicketStatus(key)] = count
	}); err != nil {
		return nil, err
	}

	if err := a.groupCounts(ctx, "$enrichment.predicted_category", func(key string, count int64) {
		stats.ByCategory[domain.TicketCategory(key)] = count
	}); err != nil {
		return nil, err
	}

	if err := a.groupCounts(ctx, "$priority", func(key string, count int64) {
		stats.ByPriority[domain.Priority(key)] = count
	}); err != nil {
		return nil, err
	}

	escalated, err := a.collection.CountDocuments(ctx, bson.M{
		"enrichment.should_escalate": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count escalated tickets: %w", err)
	}
	stats.Escalated = escalated

	return stats, nil
}

// groupCounts runs a $group count pipeline over one field and feeds each
// bucket to collect. Buckets with a missing key are skipped.
func (a *TicketAdapter) groupCounts(ctx context.Context, field string, collect func(key string, count int64)) error {
	pipeline := []bson.M{
		{
			"$group": bson.M{
				"_id":   field,
				"count": bson.M{"$sum": 1},
			},
		},
	}

	cursor, err := a.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to aggregate %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var result struct {
			Key   string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&result); err != nil {
			return fmt.Errorf("failed to decode %s bucket: %w", field, err)
		}
		if result.Key == "" {
			continue
		}
		collect(result.Key, result.Count)
	}

	return cursor.Err()
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ out.TicketRepository = (*TicketAdapter)(nil)
