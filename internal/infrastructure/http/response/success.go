package response

import (
	"encoding/json"
	"net/http"
)

// encodeFailedJSON is written when a response body cannot be marshaled.
const encodeFailedJSON = `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}`

// OK sends a 200 OK response with JSON data.
func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

// Empty sends a 200 OK response without a body.
func Empty(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// writeJSON marshals data before touching the response so an encoding
// failure can still produce a 500.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailedJSON))
		return
	}

	w.WriteHeader(statusCode)
	_, _ = w.Write(append(body, '\n'))
}
