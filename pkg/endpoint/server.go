package endpoint

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
)

// Server accepts websocket connections over HTTP. Mount it on a mux and
// call Run to start delivering events.
type Server struct {
	*dispatcher
	upgrader websocket.Upgrader
}

func NewServer(options ...Option) *Server {
	return &Server{
		dispatcher: newDispatcher(options),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// SetCheckOrigin replaces the origin check used during the upgrade. The
// default accepts every origin.
func (s *Server) SetCheckOrigin(check func(r *http.Request) bool) {
	s.upgrader.CheckOrigin = check
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-s.closed:
		http.Error(w, "server closed", http.StatusServiceUnavailable)
		return
	default:
	}
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.opts.logger.Debug().Err(err).Str("remote", r.RemoteAddr).Msg("upgrade failed")
		return
	}
	if _, err := s.accept(ws); err != nil {
		s.opts.logger.Debug().Err(err).Str("remote", r.RemoteAddr).Msg("connection rejected")
	}
}

// SendToAll sends object to every open connection.
func (s *Server) SendToAll(object any) error {
	var errs []error
	for _, conn := range s.Connections() {
		if _, err := conn.Send(object); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SendToAllExcept sends object to every open connection but the one with id.
func (s *Server) SendToAllExcept(id int, object any) error {
	var errs []error
	for _, conn := range s.Connections() {
		if conn.ID() == id {
			continue
		}
		if _, err := conn.Send(object); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ Endpoint = (*Server)(nil)
