// Package graphql exposes the contact service as a GraphQL schema using
// graph-gophers/graphql-go.
package graphql

import (
	"context"
	"log/slog"

	"github.com/graph-gophers/graphql-go"

	"github.com/V4T54L/contact-hub/internal/domain"
	"github.com/V4T54L/contact-hub/internal/usecase"
)

// Resolver is the root resolver. It is a thin wrapper: every operation
// delegates to the contact service, and domain errors reach the response
// with their kind in extensions.code.
type Resolver struct {
	svc    *usecase.ContactService
	logger *slog.Logger
}

// NewResolver creates the root resolver.
func NewResolver(svc *usecase.ContactService, logger *slog.Logger) *Resolver {
	return &Resolver{svc: svc, logger: logger}
}

// ParseSchema parses the SDL against the resolver. Panics on mismatch, which
// makes schema/resolver drift a startup failure rather than a runtime one.
func ParseSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(SDL, r, graphql.UseStringDescriptions())
}

// GetContacts resolves Query.getContacts.
func (r *Resolver) GetContacts(ctx context.Context) ([]*ContactResolver, error) {
	contacts, err := r.svc.List(ctx)
	if err != nil {
		return nil, err
	}

	resolvers := make([]*ContactResolver, 0, len(contacts))
	for _, c := range contacts {
		resolvers = append(resolvers, &ContactResolver{svc: r.svc, contact: c})
	}
	return resolvers, nil
}

// GetContact resolves Query.getContact.
func (r *Resolver) GetContact(ctx context.Context, args struct{ ID graphql.ID }) (*ContactResolver, error) {
	contact, err := r.svc.Get(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &ContactResolver{svc: r.svc, contact: *contact}, nil
}

// AddContact resolves Mutation.addContact.
func (r *Resolver) AddContact(ctx context.Context, args struct{ Name, Phone string }) (*ContactResolver, error) {
	contact, err := r.svc.Create(ctx, args.Name, args.Phone)
	if err != nil {
		return nil, err
	}
	return &ContactResolver{svc: r.svc, contact: *contact}, nil
}

// UpdateContact resolves Mutation.updateContact. Omitted arguments arrive as
// nil and are passed down as empty strings, which the service treats as
// "not provided".
func (r *Resolver) UpdateContact(ctx context.Context, args struct {
	ID    graphql.ID
	Name  *string
	Phone *string
}) (*ContactResolver, error) {
	var name, phone string
	if args.Name != nil {
		name = *args.Name
	}
	if args.Phone != nil {
		phone = *args.Phone
	}

	contact, err := r.svc.Update(ctx, string(args.ID), name, phone)
	if err != nil {
		return nil, err
	}
	return &ContactResolver{svc: r.svc, contact: *contact}, nil
}

// DeleteContact resolves Mutation.deleteContact. Absence is false, not an
// error.
func (r *Resolver) DeleteContact(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	return r.svc.Delete(ctx, string(args.ID))
}

// ContactResolver resolves the fields of a single contact. The stored fields
// answer from the record; country, timezone, and datetime go back to the
// external services on every read.
type ContactResolver struct {
	svc     *usecase.ContactService
	contact domain.Contact
}

func (c *ContactResolver) ID() graphql.ID { return graphql.ID(c.contact.ID) }

func (c *ContactResolver) Name() string { return c.contact.Name }

func (c *ContactResolver) Phone() string { return c.contact.Phone }

func (c *ContactResolver) Country(ctx context.Context) (string, error) {
	return c.svc.LiveCountry(ctx, c.contact.Phone)
}

func (c *ContactResolver) Timezone(ctx context.Context) (string, error) {
	return c.svc.LiveTimezone(ctx, c.contact.Phone)
}

func (c *ContactResolver) Datetime(ctx context.Context) (string, error) {
	return c.svc.LiveDatetime(ctx, c.contact.Phone)
}
