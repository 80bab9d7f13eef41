package httpapi

import (
	"net/http"
	"time"
)

const APIVersion = "1.0.0"

type HealthHandler struct{}

func (h HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, "not_found", "not found")
		return
	}
	writeJSON(w, map[string]any{"message": "Job Classification API", "version": APIVersion})
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":   true,
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}
