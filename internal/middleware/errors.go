package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError uses the same {"error": "..."} body as the API handlers.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
