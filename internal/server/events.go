package server

import (
	"encoding/json"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// handleEvents streams the watched config's resolution as datastar signal
// patches: once on connect, then after every change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	updates := s.notifier.Subscribe()
	defer s.notifier.Unsubscribe(updates)

	sse := datastar.NewSSE(w, r)

	send := func() error {
		data, err := json.Marshal(s.notifier.Latest())
		if err != nil {
			return err
		}
		return sse.PatchSignals(data)
	}

	if err := send(); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			if err := send(); err != nil {
				s.logger.Debug("event stream closed", "error", err)
				return
			}
		}
	}
}
