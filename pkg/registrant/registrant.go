// Package registrant implements the registrant record operations over a
// single MongoDB collection: insert, notes merge, point query and the
// email-domain histogram.
package registrant

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DefaultCollection holds the registrant documents.
const DefaultCollection = "registrations"

// ErrNotFound reports that no registrant matched the lookup key.
var ErrNotFound = errors.New("registrant not found")

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Registrant is a single signup record. Email is a lookup key by
// convention only and is not enforced unique.
type Registrant struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Age      int                `bson:"age" json:"age"`
	City     string             `bson:"city" json:"city"`
	Email    string             `bson:"email" json:"email"`
	Location GeoPoint           `bson:"location" json:"location"`
	Notes    string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// New builds a registrant with a GeoJSON point. The stored coordinate
// order is [longitude, latitude] even though operators enter latitude
// first.
func New(name string, age int, city, email string, lat, lon float64) Registrant {
	return Registrant{
		Name:  name,
		Age:   age,
		City:  city,
		Email: email,
		Location: GeoPoint{
			Type:        "Point",
			Coordinates: []float64{lon, lat},
		},
	}
}

// Store provides the registrant operations over one collection.
type Store struct {
	coll *mongo.Collection
}

// NewStore binds a store to the named collection of db; an empty name
// selects DefaultCollection.
func NewStore(db *mongo.Database, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{coll: db.Collection(collection)}
}

// Insert writes a new registrant. No uniqueness checks are performed.
func (s *Store) Insert(ctx context.Context, r Registrant) error {
	if _, err := s.coll.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("failed to insert registrant: %w", err)
	}
	return nil
}

// AddNotes merges a notes field into the first document matching email.
// Zero or multiple matches are not an error; the matched count is
// returned for reporting only. The update never creates a document.
func (s *Store) AddNotes(ctx context.Context, email, notes string) (int64, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "notes", Value: notes}}}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update registrant: %w", err)
	}
	return res.MatchedCount, nil
}

// FindByEmail returns the first matching document with its fields in
// stored order, or ErrNotFound.
func (s *Store) FindByEmail(ctx context.Context, email string) (bson.D, error) {
	var doc bson.D
	err := s.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query registrant: %w", err)
	}
	return doc, nil
}

// All returns every registrant in the collection.
func (s *Store) All(ctx context.Context) ([]Registrant, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to scan registrants: %w", err)
	}
	var out []Registrant
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode registrants: %w", err)
	}
	return out, nil
}

// DomainCount is one row of the email-domain histogram.
type DomainCount struct {
	Domain string
	Count  int
}

// DomainHistogram scans the whole collection and counts registrants per
// email domain, sorted by count descending with ties by domain name.
// Documents without an email or with an email lacking '@' are skipped.
func (s *Store) DomainHistogram(ctx context.Context) ([]DomainCount, error) {
	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to scan registrants: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	counts := map[string]int{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode registrant: %w", err)
		}
		// Non-string and missing email fields are skipped, not errors.
		email, _ := doc["email"].(string)
		if domain, ok := domainOf(email); ok {
			counts[domain]++
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("registrant scan failed: %w", err)
	}
	return sortedCounts(counts), nil
}

// Count reports the total number of documents in the collection,
// including those the histogram skips. It may therefore exceed the sum
// of the histogram counts.
func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count registrants: %w", err)
	}
	return n, nil
}

func domainOf(email string) (string, bool) {
	parts := strings.Split(email, "@")
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

func sortedCounts(counts map[string]int) []DomainCount {
	out := make([]DomainCount, 0, len(counts))
	for domain, count := range counts {
		out = append(out, DomainCount{Domain: domain, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Domain < out[j].Domain
	})
	return out
}
