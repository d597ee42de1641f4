package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cardforge-games/cardforge/backend/models"
	dbmodels "github.com/cardforge-games/cardforge/cardforge/database/models"
)

var (
	// ValidImageExtensions contains valid image file extensions
	ValidImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

	// MaxImageSize defines maximum image size (10MB)
	MaxImageSize int64 = 10 * 1024 * 1024

	// ValidUsernameRegex validates usernames
	ValidUsernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

	// ValidCardNameRegex validates card names
	ValidCardNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-_()']+$`)
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
	MinPasswordLength = 6
	MaxCardNameLength = 100
)

// ValidateRegisterRequest validates a registration request
func ValidateRegisterRequest(req *models.RegisterRequest) []models.FieldValidationError {
	var errs []models.FieldValidationError

	switch {
	case req.Username == "":
		errs = append(errs, models.FieldValidationError{Field: "username", Message: "Username is required"})
	case len(req.Username) < MinUsernameLength:
		errs = append(errs, models.FieldValidationError{Field: "username", Message: fmt.Sprintf("Username must be at least %d characters", MinUsernameLength)})
	case len(req.Username) > MaxUsernameLength:
		errs = append(errs, models.FieldValidationError{Field: "username", Message: fmt.Sprintf("Username must be at most %d characters", MaxUsernameLength)})
	case !ValidUsernameRegex.MatchString(req.Username):
		errs = append(errs, models.FieldValidationError{Field: "username", Message: "Username may only contain letters, digits, underscores and dashes"})
	}

	if len(req.Password) < MinPasswordLength {
		errs = append(errs, models.FieldValidationError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)})
	}

	return errs
}

// ValidateCardCreateRequest validates a card creation request
func ValidateCardCreateRequest(req *models.CardCreateRequest) []models.FieldValidationError {
	var errs []models.FieldValidationError

	switch {
	case req.Name == "":
		errs = append(errs, models.FieldValidationError{Field: "name", Message: "Name is required"})
	case len(req.Name) > MaxCardNameLength:
		errs = append(errs, models.FieldValidationError{Field: "name", Message: fmt.Sprintf("Name must be at most %d characters", MaxCardNameLength)})
	case !ValidCardNameRegex.MatchString(req.Name):
		errs = append(errs, models.FieldValidationError{Field: "name", Message: "Name contains invalid characters"})
	}

	if !dbmodels.ValidRarity(req.Rarity) {
		errs = append(errs, models.FieldValidationError{Field: "rarity", Message: "Rarity must be one of common, rare, epic, legendary"})
	}

	if req.ElementID <= 0 {
		errs = append(errs, models.FieldValidationError{Field: "element_id", Message: "Element is required"})
	}

	if req.Power < 0 {
		errs = append(errs, models.FieldValidationError{Field: "power", Message: "Power must not be negative"})
	}

	return errs
}

// ValidatePackCreateRequest validates a pack creation request
func ValidatePackCreateRequest(req *models.PackCreateRequest) []models.FieldValidationError {
	var errs []models.FieldValidationError

	if req.Name == "" {
		errs = append(errs, models.FieldValidationError{Field: "name", Message: "Name is required"})
	}
	if req.Cost < 0 {
		errs = append(errs, models.FieldValidationError{Field: "cost", Message: "Cost must not be negative"})
	}

	return errs
}

// ValidateDropRate validates a combination drop rate
func ValidateDropRate(rate float64) []models.FieldValidationError {
	if rate < 0 {
		return []models.FieldValidationError{{Field: "drop_rate", Message: "Drop rate must not be negative"}}
	}
	return nil
}

// ValidateImageUpload validates an uploaded card image
func ValidateImageUpload(file *multipart.FileHeader) []models.FieldValidationError {
	var errs []models.FieldValidationError

	if file.Size > MaxImageSize {
		errs = append(errs, models.FieldValidationError{Field: "image", Message: "File too large (max 10MB)"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	valid := false
	for _, allowed := range ValidImageExtensions {
		if ext == allowed {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, models.FieldValidationError{Field: "image", Message: fmt.Sprintf("Unsupported file type %q", ext)})
	}

	return errs
}
