package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	t.Run("KindOf Typed Error", func(t *testing.T) {
		err := E(KindConflict, "phone %s is already associated to a contact", "+34600111222")
		if KindOf(err) != KindConflict {
			t.Errorf("got %q, want %q", KindOf(err), KindConflict)
		}
		if !IsKind(err, KindConflict) {
			t.Error("IsKind should match")
		}
	})

	t.Run("KindOf Wrapped Error", func(t *testing.T) {
		inner := Wrap(KindUpstream, errors.New("connection refused"), "phone_validation service unreachable")
		err := fmt.Errorf("create contact: %w", inner)
		if KindOf(err) != KindUpstream {
			t.Errorf("kind must survive wrapping, got %q", KindOf(err))
		}
	})

	t.Run("KindOf Untyped Error", func(t *testing.T) {
		if KindOf(errors.New("boom")) != KindInternal {
			t.Error("untyped errors must report the internal kind")
		}
	})

	t.Run("Extensions Carry The Code", func(t *testing.T) {
		err := E(KindNotFound, "contact 99 not found")
		ext := err.Extensions()
		if ext["code"] != string(KindNotFound) {
			t.Errorf("extensions code: got %v", ext["code"])
		}
	})

	t.Run("Wrapped Cause In Message", func(t *testing.T) {
		err := Wrap(KindUpstream, errors.New("status 500"), "worldtime service failed")
		if err.Error() != "worldtime service failed: status 500" {
			t.Errorf("got %q", err.Error())
		}
		if !errors.Is(err, err.Err) {
			t.Error("Unwrap must expose the cause")
		}
	})
}
