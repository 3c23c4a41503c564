// Package ws pushes reward outcomes to connected clients so the popup can be
// rendered even when the completion response was consumed by another tab.
package ws

import (
	"encoding/json"
	"sync"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/logger"
)

// Hub fans reward events out to the sockets each user has open. A user may
// hold several connections (tabs); every one of them gets the event.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.UserID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.UserID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
}

// PublishOutcome sends a click outcome to all of the user's open sockets.
// Slow consumers are skipped rather than blocking the click path.
func (h *Hub) PublishOutcome(userID int64, outcome *domain.ClickOutcome) {
	msg, err := json.Marshal(rewardEvent{Type: "reward", Outcome: outcome})
	if err != nil {
		logger.Error("marshal reward event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- msg:
		default:
			logger.Warn("dropping reward event for slow socket", "user_id", userID)
		}
	}
}

type rewardEvent struct {
	Type    string               `json:"type"`
	Outcome *domain.ClickOutcome `json:"outcome"`
}
