package usecase

import (
	"context"
	"log/slog"

	"github.com/V4T54L/contact-hub/internal/domain"
)

// ContactService handles the business logic for the contact directory:
// CRUD against the store plus validation and enrichment of phone numbers
// through the external services.
//
// The external-service credential is threaded in at construction so that an
// absent credential fails the individual operation, not server startup, and
// so tests can inject a fake one.
type ContactService struct {
	repo   domain.ContactRepository
	phones domain.PhoneValidator
	clock  domain.WorldClock
	apiKey string
	logger *slog.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(
	repo domain.ContactRepository,
	phones domain.PhoneValidator,
	clock domain.WorldClock,
	apiKey string,
	logger *slog.Logger,
) *ContactService {
	return &ContactService{
		repo:   repo,
		phones: phones,
		clock:  clock,
		apiKey: apiKey,
		logger: logger,
	}
}

// List returns all contacts as currently stored.
func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.All(ctx)
}

// Get returns the contact with the given identifier.
func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates a new contact's phone, derives country and timezone from
// the validation service, and persists the record. The order of checks is
// binding: credential, uniqueness, then the external validation call — a
// duplicate phone must fail before any external request is made.
func (s *ContactService) Create(ctx context.Context, name, phone string) (*domain.Contact, error) {
	if err := s.requireCredential(); err != nil {
		return nil, err
	}
	if name == "" || phone == "" {
		return nil, domain.E(domain.KindInvalidArgument, "name and phone are required")
	}

	existing, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.E(domain.KindConflict, "phone %s is already associated to a contact", phone)
	}

	country, timezone, err := s.derive(ctx, phone)
	if err != nil {
		return nil, err
	}

	contact := domain.Contact{
		Name:     name,
		Phone:    phone,
		Country:  country,
		Timezone: timezone,
	}
	id, err := s.repo.Insert(ctx, contact)
	if err != nil {
		return nil, err
	}
	contact.ID = id

	s.logger.Info("contact created", "id", id, "country", country, "timezone", timezone)
	return &contact, nil
}

// Update changes a contact's name, phone, or both. Empty strings mean "not
// provided". A name-only update touches nothing else; a phone update repeats
// the full validation pipeline and re-derives country and timezone together
// with it.
//
// The uniqueness check deliberately does not exclude the contact being
// updated, so re-submitting a contact's own phone collides. Matches the
// behavior callers already depend on.
func (s *ContactService) Update(ctx context.Context, id, name, phone string) (*domain.Contact, error) {
	if err := s.requireCredential(); err != nil {
		return nil, err
	}
	if name == "" && phone == "" {
		return nil, domain.E(domain.KindInvalidArgument, "at least one of name or phone must be supplied")
	}

	if phone == "" {
		updated, err := s.repo.Update(ctx, id, domain.ContactUpdate{Name: &name})
		if err != nil {
			return nil, err
		}
		s.logger.Info("contact renamed", "id", id)
		return updated, nil
	}

	holder, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if holder != nil {
		return nil, domain.E(domain.KindConflict, "phone %s is already associated to a contact", phone)
	}

	country, timezone, err := s.derive(ctx, phone)
	if err != nil {
		return nil, err
	}

	upd := domain.ContactUpdate{
		Phone:    &phone,
		Country:  &country,
		Timezone: &timezone,
	}
	if name != "" {
		upd.Name = &name
	}
	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("contact updated", "id", id, "country", country, "timezone", timezone)
	return updated, nil
}

// Delete removes the contact with the given identifier. Absence is reported
// as false, not as an error — an intentional asymmetry with Get.
func (s *ContactService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("contact deleted", "id", id)
	}
	return deleted, nil
}

// LiveCountry re-derives the country for a phone number by calling the
// validation service fresh, never trusting the stored column. Every read of
// the country field pays for one external round trip in exchange for always
// reflecting the service's current answer.
func (s *ContactService) LiveCountry(ctx context.Context, phone string) (string, error) {
	if err := s.requireCredential(); err != nil {
		return "", err
	}
	info, err := s.phones.Validate(ctx, phone)
	if err != nil {
		return "", err
	}
	return info.Country, nil
}

// LiveTimezone re-derives the timezone for a phone number, first candidate
// only, same freshness policy as LiveCountry.
func (s *ContactService) LiveTimezone(ctx context.Context, phone string) (string, error) {
	if err := s.requireCredential(); err != nil {
		return "", err
	}
	info, err := s.phones.Validate(ctx, phone)
	if err != nil {
		return "", err
	}
	return firstTimezone(info)
}

// LiveDatetime derives the current datetime for a phone number: one call to
// the validation service to obtain the timezone, then one to the world-time
// service. Two sequential external round trips per read.
func (s *ContactService) LiveDatetime(ctx context.Context, phone string) (string, error) {
	if err := s.requireCredential(); err != nil {
		return "", err
	}
	info, err := s.phones.Validate(ctx, phone)
	if err != nil {
		return "", err
	}
	timezone, err := firstTimezone(info)
	if err != nil {
		return "", err
	}
	return s.clock.CurrentTime(ctx, timezone)
}

// derive runs the shared validation pipeline for mutations: call the
// validation service, reject invalid numbers, and pick country plus first
// timezone candidate.
func (s *ContactService) derive(ctx context.Context, phone string) (country, timezone string, err error) {
	info, err := s.phones.Validate(ctx, phone)
	if err != nil {
		return "", "", err
	}
	if !info.Valid {
		return "", "", domain.E(domain.KindValidation, "phone number %s is not valid", phone)
	}
	timezone, err = firstTimezone(info)
	if err != nil {
		return "", "", err
	}
	return info.Country, timezone, nil
}

func (s *ContactService) requireCredential() error {
	if s.apiKey == "" {
		return domain.E(domain.KindConfiguration, "external service API key is not configured")
	}
	return nil
}

func firstTimezone(info domain.PhoneInfo) (string, error) {
	// The contract promises at least one candidate; an empty list means the
	// upstream answer is unusable.
	if len(info.Timezones) == 0 {
		return "", domain.E(domain.KindUpstream, "validation service returned no timezones")
	}
	return info.Timezones[0], nil
}
