package mocks

import (
	"context"
	"strconv"
	"sync"

	"github.com/V4T54L/contact-hub/internal/domain"
)

// MockContactRepository is an in-memory mock implementation of
// domain.ContactRepository for testing. Identifiers are assigned
// sequentially starting at "1".
type MockContactRepository struct {
	mu       sync.Mutex
	nextID   int
	Contacts []domain.Contact

	AllErr    error
	FindErr   error
	InsertErr error
	UpdateErr error
	DeleteErr error
}

func (m *MockContactRepository) All(ctx context.Context) ([]domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AllErr != nil {
		return nil, m.AllErr
	}
	out := make([]domain.Contact, len(m.Contacts))
	copy(out, m.Contacts)
	return out, nil
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for i := range m.Contacts {
		if m.Contacts[i].ID == id {
			c := m.Contacts[i]
			return &c, nil
		}
	}
	return nil, domain.E(domain.KindNotFound, "contact %s not found", id)
}

func (m *MockContactRepository) FindByPhone(ctx context.Context, phone string) (*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for i := range m.Contacts {
		if m.Contacts[i].Phone == phone {
			c := m.Contacts[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *MockContactRepository) Insert(ctx context.Context, c domain.Contact) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return "", m.InsertErr
	}
	for i := range m.Contacts {
		if m.Contacts[i].Phone == c.Phone {
			return "", domain.E(domain.KindConflict, "phone %s is already associated to a contact", c.Phone)
		}
	}
	m.nextID++
	c.ID = strconv.Itoa(m.nextID)
	m.Contacts = append(m.Contacts, c)
	return c.ID, nil
}

func (m *MockContactRepository) Update(ctx context.Context, id string, upd domain.ContactUpdate) (*domain.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for i := range m.Contacts {
		if m.Contacts[i].ID != id {
			continue
		}
		if upd.Name != nil {
			m.Contacts[i].Name = *upd.Name
		}
		if upd.Phone != nil {
			m.Contacts[i].Phone = *upd.Phone
		}
		if upd.Country != nil {
			m.Contacts[i].Country = *upd.Country
		}
		if upd.Timezone != nil {
			m.Contacts[i].Timezone = *upd.Timezone
		}
		c := m.Contacts[i]
		return &c, nil
	}
	return nil, domain.E(domain.KindNotFound, "contact %s not found", id)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return false, m.DeleteErr
	}
	for i := range m.Contacts {
		if m.Contacts[i].ID == id {
			m.Contacts = append(m.Contacts[:i], m.Contacts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// MockPhoneValidator is a mock implementation of domain.PhoneValidator that
// records every number it was asked about.
type MockPhoneValidator struct {
	mu      sync.Mutex
	Info    domain.PhoneInfo
	Err     error
	Numbers []string
}

func (m *MockPhoneValidator) Validate(ctx context.Context, number string) (domain.PhoneInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Numbers = append(m.Numbers, number)
	if m.Err != nil {
		return domain.PhoneInfo{}, m.Err
	}
	return m.Info, nil
}

// Calls reports how many times Validate was invoked.
func (m *MockPhoneValidator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Numbers)
}

// MockWorldClock is a mock implementation of domain.WorldClock.
type MockWorldClock struct {
	mu        sync.Mutex
	Datetime  string
	Err       error
	Timezones []string
}

func (m *MockWorldClock) CurrentTime(ctx context.Context, timezone string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Timezones = append(m.Timezones, timezone)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Datetime, nil
}
