package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs Validate and then checks every field, reporting all
// problems as criterio field errors. configPath may be empty to skip the
// config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("api.base_url", c.API.BaseURL, validateHTTPURL),
		criterio.Run("api.image_base_url", c.API.ImageBaseURL, validateOptionalHTTPURL),
		c.validateDurations(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Toast.DefaultDuration > 0 && c.Toast.DefaultDuration < time.Second {
		warnings = append(warnings, ValidationWarning{
			Category: "Toast",
			Item:     "default_duration",
			Message:  fmt.Sprintf("%s is too short to read most toasts", c.Toast.DefaultDuration),
		})
	}

	if c.Toast.DefaultDuration < 0 && c.Toast.MaxActive == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Toast",
			Message:  "toasts never expire and max_active is unlimited; they will pile up until dismissed",
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func validateOptionalHTTPURL(raw string) error {
	if raw == "" {
		return nil
	}
	return validateHTTPURL(raw)
}

func (c *Config) validateDurations() error {
	var errs criterio.FieldErrorsBuilder
	if c.API.Timeout > 0 && c.API.Timeout < 100*time.Millisecond {
		errs = errs.Append("api.timeout", fmt.Errorf("%s is too short for network requests", c.API.Timeout))
	}
	if c.Toast.DefaultDuration > time.Hour {
		errs = errs.Append("toast.default_duration", fmt.Errorf("%s is longer than an hour; use a negative value to persist toasts", c.Toast.DefaultDuration))
	}
	return errs.ToError()
}
