package api

// ValidateRequest checks a CreateResponseRequest for structural validity.
// It returns an *APIError describing the first validation failure, or nil
// if the request is valid.
//
// Whether the request yields a non-empty utterance cannot be decided here:
// that depends on input normalization and is checked by the gateway before
// the graph runner is invoked.
func ValidateRequest(req *CreateResponseRequest) *APIError {
	if req.Model == "" {
		return NewInvalidRequestError("model", "model is required")
	}

	if req.Input == nil && len(req.Messages) == 0 {
		return NewInvalidRequestError("input", "either input or messages must be provided")
	}

	if req.Temperature != nil {
		if *req.Temperature < 0.0 || *req.Temperature > 2.0 {
			return NewInvalidRequestError("temperature", "temperature must be between 0.0 and 2.0")
		}
	}

	// A malformed or unknown previous_response_id is not rejected here:
	// an unresolvable reference degrades to "no prior context".
	// Message roles are not checked either: normalization skips entries
	// that are not user messages, whatever their role says.

	return nil
}
