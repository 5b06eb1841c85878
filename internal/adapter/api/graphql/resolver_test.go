package graphql

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/V4T54L/contact-hub/internal/domain"
	"github.com/V4T54L/contact-hub/internal/domain/mocks"
	"github.com/V4T54L/contact-hub/internal/usecase"
)

func newTestSchema(repo *mocks.MockContactRepository, phones *mocks.MockPhoneValidator, clock *mocks.MockWorldClock) *Resolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := usecase.NewContactService(repo, phones, clock, "test-api-key", logger)
	return NewResolver(svc, logger)
}

func decodeData(t *testing.T, data json.RawMessage) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("failed to decode response data: %v", err)
	}
	return out
}

func TestSchema_Queries(t *testing.T) {
	repo := &mocks.MockContactRepository{
		Contacts: []domain.Contact{{
			ID:       "1",
			Name:     "Ana",
			Phone:    "+34600111222",
			Country:  "Spain",
			Timezone: "Europe/Madrid",
		}},
	}
	phones := &mocks.MockPhoneValidator{
		Info: domain.PhoneInfo{
			Valid:     true,
			Country:   "Spain",
			Timezones: []string{"Europe/Madrid", "Europe/Ceuta"},
		},
	}
	clock := &mocks.MockWorldClock{Datetime: "2024-01-01T10:00:00"}
	schema := ParseSchema(newTestSchema(repo, phones, clock))

	t.Run("Get Contact With Derived Fields", func(t *testing.T) {
		resp := schema.Exec(context.Background(),
			`{ getContact(id: "1") { id name phone country timezone datetime } }`, "", nil)
		if len(resp.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", resp.Errors)
		}

		data := decodeData(t, resp.Data)
		contact := data["getContact"].(map[string]interface{})
		want := map[string]string{
			"id":       "1",
			"name":     "Ana",
			"phone":    "+34600111222",
			"country":  "Spain",
			"timezone": "Europe/Madrid",
			"datetime": "2024-01-01T10:00:00",
		}
		for field, value := range want {
			if contact[field] != value {
				t.Errorf("%s: got %v, want %q", field, contact[field], value)
			}
		}
	})

	t.Run("Derived Fields Hit The Services Per Read", func(t *testing.T) {
		before := phones.Calls()
		resp := schema.Exec(context.Background(),
			`{ getContact(id: "1") { country timezone datetime } }`, "", nil)
		if len(resp.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", resp.Errors)
		}
		// One validation call per derived field: country, timezone, and the
		// datetime chain's first hop.
		if got := phones.Calls() - before; got != 3 {
			t.Errorf("validation calls: got %d, want 3", got)
		}
	})

	t.Run("Get Unknown Contact", func(t *testing.T) {
		resp := schema.Exec(context.Background(), `{ getContact(id: "99") { id } }`, "", nil)
		if len(resp.Errors) != 1 {
			t.Fatalf("expected 1 error, got %v", resp.Errors)
		}
		if code := resp.Errors[0].Extensions["code"]; code != string(domain.KindNotFound) {
			t.Errorf("extensions.code: got %v, want %q", code, domain.KindNotFound)
		}
	})

	t.Run("List Contacts", func(t *testing.T) {
		resp := schema.Exec(context.Background(), `{ getContacts { id name phone } }`, "", nil)
		if len(resp.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", resp.Errors)
		}
		data := decodeData(t, resp.Data)
		list := data["getContacts"].([]interface{})
		if len(list) != 1 {
			t.Fatalf("expected 1 contact, got %d", len(list))
		}
	})
}

func TestSchema_Mutations(t *testing.T) {
	t.Run("Add Contact", func(t *testing.T) {
		repo := &mocks.MockContactRepository{}
		phones := &mocks.MockPhoneValidator{
			Info: domain.PhoneInfo{
				Valid:     true,
				Country:   "Spain",
				Timezones: []string{"Europe/Madrid", "Europe/Ceuta"},
			},
		}
		schema := ParseSchema(newTestSchema(repo, phones, &mocks.MockWorldClock{}))

		resp := schema.Exec(context.Background(),
			`mutation { addContact(name: "Ana", phone: "+34600111222") { id name country timezone } }`, "", nil)
		if len(resp.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", resp.Errors)
		}

		data := decodeData(t, resp.Data)
		contact := data["addContact"].(map[string]interface{})
		if contact["id"] == "" {
			t.Error("expected store-assigned id")
		}
		if contact["country"] != "Spain" || contact["timezone"] != "Europe/Madrid" {
			t.Errorf("derived fields: got %v/%v", contact["country"], contact["timezone"])
		}
	})

	t.Run("Add Duplicate Phone", func(t *testing.T) {
		repo := &mocks.MockContactRepository{
			Contacts: []domain.Contact{{ID: "1", Name: "Ana", Phone: "+34600111222"}},
		}
		phones := &mocks.MockPhoneValidator{Info: domain.PhoneInfo{Valid: true, Timezones: []string{"UTC"}}}
		schema := ParseSchema(newTestSchema(repo, phones, &mocks.MockWorldClock{}))

		resp := schema.Exec(context.Background(),
			`mutation { addContact(name: "Bea", phone: "+34600111222") { id } }`, "", nil)
		if len(resp.Errors) != 1 {
			t.Fatalf("expected 1 error, got %v", resp.Errors)
		}
		if code := resp.Errors[0].Extensions["code"]; code != string(domain.KindConflict) {
			t.Errorf("extensions.code: got %v, want %q", code, domain.KindConflict)
		}
		if phones.Calls() != 0 {
			t.Error("conflict must fail before any validation call")
		}
	})

	t.Run("Update Name Only", func(t *testing.T) {
		repo := &mocks.MockContactRepository{
			Contacts: []domain.Contact{{ID: "1", Name: "Ana", Phone: "+34600111222", Country: "Spain", Timezone: "Europe/Madrid"}},
		}
		schema := ParseSchema(newTestSchema(repo, &mocks.MockPhoneValidator{}, &mocks.MockWorldClock{}))

		resp := schema.Exec(context.Background(),
			`mutation { updateContact(id: "1", name: "Ana Maria") { name phone } }`, "", nil)
		if len(resp.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", resp.Errors)
		}
		data := decodeData(t, resp.Data)
		contact := data["updateContact"].(map[string]interface{})
		if contact["name"] != "Ana Maria" {
			t.Errorf("name: got %v", contact["name"])
		}
		if repo.Contacts[0].Country != "Spain" || repo.Contacts[0].Timezone != "Europe/Madrid" {
			t.Error("name-only update must leave country/timezone untouched")
		}
	})

	t.Run("Update Without Arguments", func(t *testing.T) {
		repo := &mocks.MockContactRepository{
			Contacts: []domain.Contact{{ID: "1", Name: "Ana", Phone: "+34600111222"}},
		}
		schema := ParseSchema(newTestSchema(repo, &mocks.MockPhoneValidator{}, &mocks.MockWorldClock{}))

		resp := schema.Exec(context.Background(), `mutation { updateContact(id: "1") { id } }`, "", nil)
		if len(resp.Errors) != 1 {
			t.Fatalf("expected 1 error, got %v", resp.Errors)
		}
		if code := resp.Errors[0].Extensions["code"]; code != string(domain.KindInvalidArgument) {
			t.Errorf("extensions.code: got %v, want %q", code, domain.KindInvalidArgument)
		}
	})

	t.Run("Delete Contact", func(t *testing.T) {
		repo := &mocks.MockContactRepository{
			Contacts: []domain.Contact{{ID: "1", Name: "Ana", Phone: "+34600111222"}},
		}
		schema := ParseSchema(newTestSchema(repo, &mocks.MockPhoneValidator{}, &mocks.MockWorldClock{}))

		resp := schema.Exec(context.Background(), `mutation { deleteContact(id: "1") }`, "", nil)
		if len(resp.Errors) != 0 {
			t.Fatalf("unexpected errors: %v", resp.Errors)
		}
		data := decodeData(t, resp.Data)
		if data["deleteContact"] != true {
			t.Errorf("deleteContact: got %v, want true", data["deleteContact"])
		}

		resp = schema.Exec(context.Background(), `mutation { deleteContact(id: "1") }`, "", nil)
		if len(resp.Errors) != 0 {
			t.Fatalf("delete of a missing contact must not error, got %v", resp.Errors)
		}
		data = decodeData(t, resp.Data)
		if data["deleteContact"] != false {
			t.Errorf("deleteContact on missing id: got %v, want false", data["deleteContact"])
		}
	})
}
