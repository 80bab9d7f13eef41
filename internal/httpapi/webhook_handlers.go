package httpapi

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"jobclassify-engine/internal/bot"
)

type WebhookHandler struct {
	Bot    *bot.Responder
	Sender bot.Sender
}

// Receive answers job messages and always acknowledges with "OK".
func (h WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var payload bot.Webhook
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&payload); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON: "+err.Error())
		return
	}

	n := bot.Handle(r.Context(), h.Bot, h.Sender, payload)
	log.Printf("[bot] request_id=%s messages=%d replies=%d", RequestIDFrom(r.Context()), len(payload.Messages), n)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "OK")
}
