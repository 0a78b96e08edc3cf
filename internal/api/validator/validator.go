package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	// Report field names from json tags so error messages match the wire
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, fn := range map[string]playgroundvalidator.Func{
		"tier":              validateTier,
		"user_role":         validateUserRole,
		"post_status":       validatePostStatus,
		"campaign_status":   validateCampaignStatus,
		"contact_status":    validateContactStatus,
		"experiment_status": validateExperimentStatus,
		"platform":          validatePlatform,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil
		}
	}

	return &CustomValidator{validator: v}
}

func validateTier(fl playgroundvalidator.FieldLevel) bool {
	tier := fl.Field().String()
	return tier == "basic" || tier == "gold" || tier == "enterprise"
}

func validateUserRole(fl playgroundvalidator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "user" || role == "admin"
}

func validatePostStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "draft" || status == "scheduled" || status == "published" || status == "failed"
}

func validateCampaignStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "draft" || status == "active" || status == "paused" || status == "completed"
}

func validateContactStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "lead" || status == "prospect" || status == "customer" || status == "vip" || status == "churned"
}

func validateExperimentStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "idea" || status == "active" || status == "paused" || status == "completed"
}

func validatePlatform(fl playgroundvalidator.FieldLevel) bool {
	platform := fl.Field().String()
	validPlatforms := map[string]bool{
		"instagram": true,
		"facebook":  true,
		"twitter":   true,
		"linkedin":  true,
		"tiktok":    true,
		"youtube":   true,
		"email":     true,
	}
	return validPlatforms[platform]
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}
