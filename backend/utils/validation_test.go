package utils

import (
	"strings"
	"testing"

	"github.com/cardforge-games/cardforge/backend/models"
)

func fieldNames(errs []models.FieldValidationError) []string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Field
	}
	return names
}

func hasField(errs []models.FieldValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name     string
		req      models.RegisterRequest
		badField string
	}{
		{"valid", models.RegisterRequest{Username: "alice_01", Password: "secret123"}, ""},
		{"empty username", models.RegisterRequest{Username: "", Password: "secret123"}, "username"},
		{"short username", models.RegisterRequest{Username: "ab", Password: "secret123"}, "username"},
		{"long username", models.RegisterRequest{Username: strings.Repeat("a", 33), Password: "secret123"}, "username"},
		{"username with spaces", models.RegisterRequest{Username: "bad name", Password: "secret123"}, "username"},
		{"short password", models.RegisterRequest{Username: "alice", Password: "abc"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegisterRequest(&tt.req)
			if tt.badField == "" {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", fieldNames(errs))
				}
				return
			}
			if !hasField(errs, tt.badField) {
				t.Errorf("expected error on %q, got %v", tt.badField, fieldNames(errs))
			}
		})
	}
}

func TestValidateCardCreateRequest(t *testing.T) {
	valid := models.CardCreateRequest{Name: "Ember Wisp", Rarity: "common", ElementID: 1, Power: 2}
	if errs := ValidateCardCreateRequest(&valid); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", fieldNames(errs))
	}

	tests := []struct {
		name     string
		mutate   func(*models.CardCreateRequest)
		badField string
	}{
		{"empty name", func(r *models.CardCreateRequest) { r.Name = "" }, "name"},
		{"name too long", func(r *models.CardCreateRequest) { r.Name = strings.Repeat("a", 101) }, "name"},
		{"invalid characters", func(r *models.CardCreateRequest) { r.Name = "<script>" }, "name"},
		{"unknown rarity", func(r *models.CardCreateRequest) { r.Rarity = "mythic" }, "rarity"},
		{"missing element", func(r *models.CardCreateRequest) { r.ElementID = 0 }, "element_id"},
		{"negative power", func(r *models.CardCreateRequest) { r.Power = -1 }, "power"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			errs := ValidateCardCreateRequest(&req)
			if !hasField(errs, tt.badField) {
				t.Errorf("expected error on %q, got %v", tt.badField, fieldNames(errs))
			}
		})
	}
}

func TestValidatePackCreateRequest(t *testing.T) {
	if errs := ValidatePackCreateRequest(&models.PackCreateRequest{Name: "Starter", Cost: 50}); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", fieldNames(errs))
	}
	if errs := ValidatePackCreateRequest(&models.PackCreateRequest{Name: "Free Pack", Cost: 0}); len(errs) != 0 {
		t.Errorf("zero cost is allowed, got %v", fieldNames(errs))
	}
	if errs := ValidatePackCreateRequest(&models.PackCreateRequest{Name: "", Cost: 10}); !hasField(errs, "name") {
		t.Errorf("expected error on name, got %v", fieldNames(errs))
	}
	if errs := ValidatePackCreateRequest(&models.PackCreateRequest{Name: "Bad", Cost: -5}); !hasField(errs, "cost") {
		t.Errorf("expected error on cost, got %v", fieldNames(errs))
	}
}

func TestValidateDropRate(t *testing.T) {
	if errs := ValidateDropRate(0.5); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", fieldNames(errs))
	}
	// Zero-weight entries are allowed; they are simply never drawn
	if errs := ValidateDropRate(0); len(errs) != 0 {
		t.Errorf("zero rate is allowed, got %v", fieldNames(errs))
	}
	if errs := ValidateDropRate(-0.1); !hasField(errs, "drop_rate") {
		t.Errorf("expected error on drop_rate, got %v", fieldNames(errs))
	}
}
