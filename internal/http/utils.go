package http

import (
	"encoding/json"
	"net/http"
)

// WriteJSONError writes the queue API error envelope, {"error": "message"},
// with the given status. Handlers route every client-visible failure through
// here so enqueue, status and cancel callers can rely on one error shape.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON encodes a success payload (enqueue receipts, status snapshots,
// statistics) as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
