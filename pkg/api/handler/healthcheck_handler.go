package handler

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/CoverConnect/egonet/pkg/endpoint"
)

type ProcessInfoResponse struct {
	Name        string `json:"name"`
	Connections int    `json:"connections"`
}

// ConnectionSource lists open connections.
type ConnectionSource interface {
	Connections() []*endpoint.Connection
}

func HealthCheckHandler(source ConnectionSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infoResp := &ProcessInfoResponse{
			Name:        os.Args[0],
			Connections: len(source.Connections()),
		}
		writeJSON(w, http.StatusOK, infoResp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
