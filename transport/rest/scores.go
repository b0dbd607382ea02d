package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/session"
)

// scoresHandler - the scores of the caller's session. Callers without a session, or with nothing
// saved yet, get zeros.
func (that *Server) scoresHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "scoresHandler")

	var scores entity.Scores

	if sessionID, ok := session.FromRequest(r); ok {
		loaded, err := that.scoresFor(sessionID).Load(r.Context())

		switch {
		case err == nil:
			scores = loaded
		case errors.Is(err, apperror.ErrScoresNotFound):
		case errors.Is(err, apperror.ErrCorruptScores):
			log.Warn("corrupt scores, reporting zero", "session", sessionID, "error", err)
		default:
			log.Error("failed to load scores", "session", sessionID, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(scores); err != nil {
		log.Error("failed to write scores", "error", err)
	}
}
