package api

import "fmt"

// ValidationConfig holds configurable limits for request validation.
type ValidationConfig struct {
	// MaxTextSize caps the text field length in bytes. Zero disables
	// the check.
	MaxTextSize int
}

// DefaultValidationConfig returns a ValidationConfig with sensible defaults.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxTextSize: 1 << 20, // 1 MB
	}
}

// ValidateConvertRequest checks a ConvertRequest for structural validity.
// It returns an *APIError describing the first validation failure, or nil
// if the request is valid. Layout names are checked for presence only;
// resolving them against the supported set is the engine's job. Empty text
// is valid and converts to empty text.
func ValidateConvertRequest(req *ConvertRequest, cfg ValidationConfig) *APIError {
	if req.From == "" {
		return NewInvalidRequestError("from", "from layout is required")
	}

	if req.To == "" {
		return NewInvalidRequestError("to", "to layout is required")
	}

	if cfg.MaxTextSize > 0 && len(req.Text) > cfg.MaxTextSize {
		return NewInvalidRequestError("text",
			fmt.Sprintf("text exceeds maximum size of %d bytes", cfg.MaxTextSize))
	}

	return nil
}
