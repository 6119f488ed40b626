package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/redeposto/ponto-backend-go/internal/pkg/validator"
)

// pathID returns the {id} URL parameter. Ids that cannot name a stored row
// are answered with notFound before reaching the service.
func pathID(r *http.Request, notFound error) (string, error) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		return "", notFound
	}
	return id, nil
}
