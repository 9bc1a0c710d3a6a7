package message

import (
	"time"

	"github.com/CoverConnect/egonet/pkg/endpoint"
)

// Chat is a line of text relayed to every connected peer.
type Chat struct {
	From   string    `json:"from"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// Presence announces a peer joining or leaving.
type Presence struct {
	Name   string `json:"name"`
	Online bool   `json:"online"`
}

// Register adds every message type to r under its wire name.
func Register(r *endpoint.Registry) error {
	if err := endpoint.Register[Chat](r, "chat"); err != nil {
		return err
	}
	return endpoint.Register[Presence](r, "presence")
}

// NewRegistry returns a registry holding every message type.
func NewRegistry() *endpoint.Registry {
	r := endpoint.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}
