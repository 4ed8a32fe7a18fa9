package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"

	pkgerrors "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/pkg/errors"
)

func TestFromClassifiesSentinels(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", Validation("email", "is required"), http.StatusBadRequest, CodeValidation},
		{"wrapped invalid", fmt.Errorf("parse: %w", pkgerrors.ErrInvalidArgument), http.StatusBadRequest, CodeValidation},
		{"not found", NotFound("course"), http.StatusNotFound, CodeNotFound},
		{"gorm not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound, CodeNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, http.StatusConflict, CodeConflict},
		{"other", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := From(tc.err)
			if got.Status != tc.status || got.Code != tc.code {
				t.Fatalf("From(%v): got status=%d code=%s want status=%d code=%s", tc.err, got.Status, got.Code, tc.status, tc.code)
			}
		})
	}
}

func TestValidationCarriesFieldAndMessage(t *testing.T) {
	err := Validation("email", "is required")
	if err.Field != "email" {
		t.Fatalf("field: got=%q", err.Field)
	}
	if err.Error() != "invalid argument: is required" {
		t.Fatalf("message: got=%q", err.Error())
	}
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument in chain")
	}
}
