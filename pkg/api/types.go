package api

// ConvertRequest is the inbound payload for POST /api/convert.
type ConvertRequest struct {
	// Text is the input typed under the From layout. May be empty.
	Text string `json:"text"`

	// From names the layout the text was typed with.
	From string `json:"from"`

	// To names the layout the text should have been typed with.
	To string `json:"to"`
}

// ConvertResult is the success envelope for a completed conversion.
type ConvertResult struct {
	Status string `json:"status"` // always "success"
	Data   string `json:"data"`   // the converted text
}

// NewConvertResult wraps converted text in the success envelope.
func NewConvertResult(text string) *ConvertResult {
	return &ConvertResult{Status: "success", Data: text}
}

// Conversion is a stored record of a completed conversion. Text fields are
// only populated when the deployment is configured to retain payloads.
type Conversion struct {
	ID         string `json:"id"`
	Object     string `json:"object"` // always "conversion"
	From       string `json:"from"`
	To         string `json:"to"`
	InputText  string `json:"input_text,omitempty"`
	OutputText string `json:"output_text,omitempty"`

	// Length is the input length in characters. Conversion is
	// one-to-one, so it is also the output length.
	Length int `json:"length"`

	// CreatedAt is the Unix timestamp of the conversion.
	CreatedAt int64 `json:"created_at"`
}

// HealthStatus is the payload of GET /api/healthchecker.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
