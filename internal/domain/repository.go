package domain

import "context"

// ContactRepository defines the interface for contact persistence.
// This abstracts away the specific implementations (e.g., MongoDB, PostgreSQL).
//
// Implementations must enforce a unique constraint on the phone field and
// surface violations as KindConflict, so that two racing inserts cannot both
// succeed even though the use case also pre-checks uniqueness.
type ContactRepository interface {
	// All returns every stored contact.
	All(ctx context.Context) ([]Contact, error)

	// FindByID returns the contact with the given identifier, or a
	// KindNotFound error. Ill-formed identifiers are treated as unknown.
	FindByID(ctx context.Context, id string) (*Contact, error)

	// FindByPhone returns the contact holding the given phone number, or
	// (nil, nil) when no contact has it.
	FindByPhone(ctx context.Context, phone string) (*Contact, error)

	// Insert stores a new contact and returns the store-assigned identifier.
	Insert(ctx context.Context, c Contact) (string, error)

	// Update applies the non-nil fields of upd to the contact with the given
	// identifier and returns the updated record, or a KindNotFound error.
	Update(ctx context.Context, id string, upd ContactUpdate) (*Contact, error)

	// Delete removes the contact with the given identifier. It reports
	// whether exactly one record was removed; absence is (false, nil),
	// never an error.
	Delete(ctx context.Context, id string) (bool, error)
}

// PhoneValidator defines the interface for the external phone-validation
// service.
type PhoneValidator interface {
	// Validate asks the service about a phone number. A non-success response
	// from the service is a KindUpstream error; validity of the number itself
	// is reported through PhoneInfo.Valid, not through the error.
	Validate(ctx context.Context, number string) (PhoneInfo, error)
}

// WorldClock defines the interface for the external world-time service.
type WorldClock interface {
	// CurrentTime returns the service's current datetime string for a
	// timezone. A non-success response is a KindUpstream error.
	CurrentTime(ctx context.Context, timezone string) (string, error)
}
