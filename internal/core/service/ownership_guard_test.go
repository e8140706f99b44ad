package service

import (
	"errors"
	"testing"

	"github.com/inventory-app/inventory-api/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	owner := &domain.User{ID: "u-1"}
	stranger := &domain.User{ID: "u-2"}
	product := &domain.Product{ID: "p-1", OwnerID: "u-1"}

	for _, action := range []Action{ActionView, ActionUpdate, ActionDelete} {
		if err := Authorize(owner, product, action); err != nil {
			t.Fatalf("owner denied %s: %v", action, err)
		}

		err := Authorize(stranger, product, action)
		var fe *domain.FieldError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FieldError for %s, got %v", action, err)
		}
		if fe.Kind != domain.KindForbidden || fe.Field != domain.GeneralField {
			t.Fatalf("unexpected denial for %s: %+v", action, fe)
		}
		want := "You are not allowed to " + string(action) + " this product"
		if fe.Message != want {
			t.Fatalf("expected %q, got %q", want, fe.Message)
		}
	}
}

func TestAuthorize_NilPrincipal(t *testing.T) {
	if err := Authorize(nil, &domain.Product{OwnerID: "u-1"}, ActionView); err == nil {
		t.Fatalf("expected denial without a principal")
	}
}

func TestAuthorize_EmptyOwner(t *testing.T) {
	if err := Authorize(&domain.User{}, &domain.Product{}, ActionView); err == nil {
		t.Fatalf("empty ids must never match")
	}
}
