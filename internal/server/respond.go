package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
	}
}

// respondWithError writes the JSON error envelope, tagged with the request id when one was assigned
func respondWithError(w http.ResponseWriter, r *http.Request, code int, message string) {
	payload := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if id := RequestID(r.Context()); id != "" {
		payload["requestId"] = id
	}
	respondWithJSON(w, code, payload)
}

func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
