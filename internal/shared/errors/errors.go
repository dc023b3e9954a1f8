// Package errors maps internal failures to HTTP responses. Imported as
// apperrors to avoid shadowing the standard library.
package errors

import (
	"errors"
	"log"
	"net/http"

	"github.com/ecazzaniga/fnolwatch/internal/api"
)

// HandleError writes an HTTP error response for err. Backend transport
// failures become a 502 "failed to load" state; anything else is a 500.
// Neither crashes the application.
func HandleError(w http.ResponseWriter, err error) {
	var te *api.TransportError
	if errors.As(err, &te) {
		log.Printf("backend request failed: %v", te)
		http.Error(w, "failed to load data from the FNOL backend", http.StatusBadGateway)
		return
	}
	log.Printf("internal error: %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
