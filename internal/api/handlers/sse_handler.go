package handlers

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

const defaultHeartbeatInterval = 30 * time.Second

// SSEHandler streams committed catalog writes to curators as Server-Sent Events
type SSEHandler struct {
	eventBus  providers.EventBus
	gate      auth.Authorizer
	heartbeat time.Duration
	clients   map[chan struct{}]entities.DirectoryResource
	mu        sync.RWMutex
}

// NewSSEHandler creates a new SSE handler
func NewSSEHandler(eventBus providers.EventBus, gate auth.Authorizer) *SSEHandler {
	return &SSEHandler{
		eventBus:  eventBus,
		gate:      gate,
		heartbeat: defaultHeartbeatInterval,
		clients:   make(map[chan struct{}]entities.DirectoryResource),
	}
}

// SetHeartbeatInterval changes how often idle streams receive a keep-alive comment
func (h *SSEHandler) SetHeartbeatInterval(d time.Duration) {
	if d > 0 {
		h.heartbeat = d
	}
}

// StreamDirectoryEvents handles GET /admin/events[?resource=place]
func (h *SSEHandler) StreamDirectoryEvents(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Authorize(identityOf(r), auth.PermStreamEvents); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	resource := entities.DirectoryResource(r.URL.Query().Get("resource"))
	if resource != "" && !resource.Valid() {
		respondWithError(w, r, apperrors.NewValidationError("Unknown resource "+string(resource)), "")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, r, apperrors.NewInternalError("streaming not supported", nil), "Streaming not supported")
		return
	}

	ctx := r.Context()
	logger := observability.LoggerFromContext(ctx)

	eventChan, err := h.eventBus.Subscribe(ctx, providers.EventChannelDirectoryUpdates)
	if err != nil {
		respondWithError(w, r, apperrors.NewExternalError("failed to subscribe to directory updates", err), "Event stream unavailable")
		return
	}

	// Set headers for SSE
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := h.registerClient(resource)
	defer h.unregisterClient(client)

	h.sendEvent(w, "connected", map[string]interface{}{
		"resource":  resource,
		"timestamp": time.Now().UTC(),
	})
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("Client disconnected from directory stream")
			return
		case <-ticker.C:
			// Comment frame; EventSource clients ignore it
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil || (resource != "" && event.Resource != resource) {
				continue
			}
			h.sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

func (h *SSEHandler) registerClient(resource entities.DirectoryResource) chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()

	client := make(chan struct{})
	h.clients[client] = resource
	observability.GetLogger().Debug().Int("clients", len(h.clients)).Msg("Directory stream client registered")
	return client
}

func (h *SSEHandler) unregisterClient(client chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, client)
	close(client)
}

// sendEvent writes one SSE frame
func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		observability.GetLogger().Error().Err(err).Msg("Failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

// GetClientCount returns the number of connected stream clients
func (h *SSEHandler) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
