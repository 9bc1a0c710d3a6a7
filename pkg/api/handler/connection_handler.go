package handler

import (
	"net/http"

	"github.com/CoverConnect/egonet/pkg/endpoint"
)

type GetConnectionsResponse struct {
	Connections []*Connection `json:"connections"`
}

type Connection struct {
	ID            int     `json:"id"`
	Name          string  `json:"name,omitempty"`
	Remote        string  `json:"remote"`
	IdleSeconds   float64 `json:"idle_seconds"`
	IdleThreshold float64 `json:"idle_threshold_seconds"`
}

func GetConnectionsHandler(source ConnectionSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, buildGetConnectionsResponse(source.Connections()))
	}
}

func buildGetConnectionsResponse(connections []*endpoint.Connection) *GetConnectionsResponse {
	conns := make([]*Connection, 0, len(connections))
	for _, c := range connections {
		conns = append(conns, &Connection{
			ID:            c.ID(),
			Name:          c.Name(),
			Remote:        c.RemoteAddr().String(),
			IdleSeconds:   c.IdleTime().Seconds(),
			IdleThreshold: c.IdleThreshold().Seconds(),
		})
	}
	return &GetConnectionsResponse{Connections: conns}
}
