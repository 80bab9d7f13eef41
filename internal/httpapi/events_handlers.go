package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"jobclassify-engine/internal/events"
)

// heartbeatEvery keeps idle SSE connections open through proxies.
var heartbeatEvery = 25 * time.Second

type EventsHandler struct {
	Hub *events.Hub
}

// ServeSSE streams engine events. Each event is sent under its own type name
// so clients can listen for e.g. "jobs_scraped"; ?types=a,b narrows the
// stream.
func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "Streaming unsupported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var types []string
	for _, t := range strings.Split(r.URL.Query().Get("types"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	ch := h.Hub.Subscribe(types...)
	defer h.Hub.Unsubscribe(ch)

	ping := events.MakeEvent(RequestIDFrom(r.Context()), events.TypePing, 1, nil)
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", events.TypePing, ping)
	flusher.Flush()

	tick := time.NewTicker(heartbeatEvery)
	defer tick.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-tick.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", msg.Seq, msg.Type, msg.Data)
			flusher.Flush()
		}
	}
}
