// Package mongo implements the contact store on a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/V4T54L/contact-hub/internal/domain"
)

// contactDoc is the stored shape of a contact. The _id is assigned by the
// database on insert.
type contactDoc struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	Name     string        `bson:"name"`
	Phone    string        `bson:"phone"`
	Country  string        `bson:"country"`
	Timezone string        `bson:"timezone"`
}

func (d contactDoc) toDomain() domain.Contact {
	return domain.Contact{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Phone:    d.Phone,
		Country:  d.Country,
		Timezone: d.Timezone,
	}
}

// ContactRepository implements domain.ContactRepository on a MongoDB
// collection with a unique index on phone.
type ContactRepository struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

// NewContactRepository creates the repository and ensures the unique phone
// index exists, so racing inserts of the same phone cannot both succeed.
func NewContactRepository(ctx context.Context, db *mongo.Database, collection string, logger *slog.Logger) (*ContactRepository, error) {
	coll := db.Collection(collection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create unique phone index: %w", err)
	}

	return &ContactRepository{
		coll:   coll,
		logger: logger.With("component", "mongo_repository"),
	}, nil
}

// All returns every stored contact.
func (r *ContactRepository) All(ctx context.Context) ([]domain.Contact, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []contactDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode contacts: %w", err)
	}

	contacts := make([]domain.Contact, 0, len(docs))
	for _, d := range docs {
		contacts = append(contacts, d.toDomain())
	}
	return contacts, nil
}

// FindByID returns the contact with the given identifier. Ill-formed
// identifiers cannot match any stored document and report not found.
func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.E(domain.KindNotFound, "contact %s not found", id)
	}

	var doc contactDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.E(domain.KindNotFound, "contact %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contact %s: %w", id, err)
	}

	contact := doc.toDomain()
	return &contact, nil
}

// FindByPhone returns the contact holding the given phone, or (nil, nil).
func (r *ContactRepository) FindByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	var doc contactDoc
	err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contact by phone: %w", err)
	}

	contact := doc.toDomain()
	return &contact, nil
}

// Insert stores a new contact and returns the database-assigned identifier.
func (r *ContactRepository) Insert(ctx context.Context, c domain.Contact) (string, error) {
	res, err := r.coll.InsertOne(ctx, contactDoc{
		Name:     c.Name,
		Phone:    c.Phone,
		Country:  c.Country,
		Timezone: c.Timezone,
	})
	if mongo.IsDuplicateKeyError(err) {
		return "", domain.E(domain.KindConflict, "phone %s is already associated to a contact", c.Phone)
	}
	if err != nil {
		return "", fmt.Errorf("failed to insert contact: %w", err)
	}

	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Update applies the non-nil fields of upd and returns the updated document.
func (r *ContactRepository) Update(ctx context.Context, id string, upd domain.ContactUpdate) (*domain.Contact, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.E(domain.KindNotFound, "contact %s not found", id)
	}

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Country != nil {
		set["country"] = *upd.Country
	}
	if upd.Timezone != nil {
		set["timezone"] = *upd.Timezone
	}

	var doc contactDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.E(domain.KindNotFound, "contact %s not found", id)
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, domain.E(domain.KindConflict, "phone is already associated to a contact")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contact %s: %w", id, err)
	}

	contact := doc.toDomain()
	return &contact, nil
}

// Delete removes the contact with the given identifier and reports whether
// exactly one document was removed.
func (r *ContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete contact %s: %w", id, err)
	}
	return res.DeletedCount == 1, nil
}
