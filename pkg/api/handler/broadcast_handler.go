package handler

import (
	"net/http"
	"time"

	"github.com/CoverConnect/egonet/pkg/message"
)

type Response struct {
	Message string `json:"message"`
}

// Broadcaster sends an object to every open connection.
type Broadcaster interface {
	SendToAll(object any) error
}

// BroadcastHandler relays the "text" form value to every peer as a Chat
// from "server".
func BroadcastHandler(b Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text := r.FormValue("text")
		if text == "" {
			writeJSON(w, http.StatusBadRequest, Response{Message: "missing text"})
			return
		}
		chat := message.Chat{From: "server", Text: text, SentAt: time.Now().UTC()}
		if err := b.SendToAll(chat); err != nil {
			writeJSON(w, http.StatusBadGateway, Response{Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, Response{Message: "ok, " + text + "!"})
	}
}
