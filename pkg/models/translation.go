package models

// TranslationRequest asks for a Box file to be prepared for the viewer.
type TranslationRequest struct {
	BoxFile string `json:"boxfile"`
}

// TranslationResponse reports whether a viewable derivative exists yet.
// URN is the durable handle clients keep for status polling.
type TranslationResponse struct {
	ReadyToShow bool   `json:"readyToShow"`
	Status      string `json:"status"`
	URN         string `json:"urn,omitempty"`
	ObjectID    string `json:"objectId,omitempty"`
}

// StatusRequest polls a previously issued URN.
type StatusRequest struct {
	URN string `json:"urn"`
}

// StatusResponse reports the current state of a translation job.
type StatusResponse struct {
	ReadyToShow bool   `json:"readyToShow"`
	Status      string `json:"status"`
	URN         string `json:"urn"`
}

// ErrorResponse carries an upstream error body verbatim.
type ErrorResponse struct {
	Error string `json:"error"`
}
