package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	appgame "github.com/mlorenz/robotgame-go/internal/application/game"
	"github.com/mlorenz/robotgame-go/internal/application/round"
	"github.com/mlorenz/robotgame-go/internal/domain/command"
	"github.com/mlorenz/robotgame-go/internal/domain/shared"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createGameRequest struct {
	MapSize    int `json:"mapSize"`
	MaxRounds  int `json:"maxRounds"`
	MaxPlayers int `json:"maxPlayers"`
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var body createGameRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, shared.NewValidationError("body", "malformed JSON"))
			return
		}
	}

	response, err := s.handlers.CreateGame.Handle(r.Context(), &appgame.CreateGameCommand{
		MapSize:    body.MapSize,
		MaxRounds:  body.MaxRounds,
		MaxPlayers: body.MaxPlayers,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	response, err := s.handlers.ListGames.Handle(r.Context(), &appgame.ListGamesQuery{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	response, err := s.handlers.Lifecycle.Handle(r.Context(), &appgame.DeleteGameCommand{
		GameID: gameID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

type joinGameRequest struct {
	PlayerName string `json:"playerName"`
}

func (s *Server) joinGame(w http.ResponseWriter, r *http.Request) {
	var body joinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, shared.NewValidationError("body", "malformed JSON"))
		return
	}

	response, err := s.handlers.JoinGame.Handle(r.Context(), &appgame.JoinGameCommand{
		GameID:     gameID(r),
		PlayerName: body.PlayerName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) startGame(w http.ResponseWriter, r *http.Request) {
	response, err := s.handlers.Lifecycle.Handle(r.Context(), &appgame.StartGameCommand{
		GameID: gameID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) endGame(w http.ResponseWriter, r *http.Request) {
	response, err := s.handlers.Lifecycle.Handle(r.Context(), &appgame.EndGameCommand{
		GameID: gameID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

type submitCommandsRequest struct {
	PlayerName string            `json:"playerName"`
	Commands   []command.Command `json:"commands"`
}

func (s *Server) submitCommands(w http.ResponseWriter, r *http.Request) {
	var body submitCommandsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, shared.NewValidationError("body", "malformed JSON"))
		return
	}

	response, err := s.handlers.SubmitCommands.Handle(r.Context(), &round.SubmitCommandsCommand{
		GameID:     gameID(r),
		PlayerName: body.PlayerName,
		Commands:   body.Commands,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) getMap(w http.ResponseWriter, r *http.Request) {
	roundNumber, err := roundFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	response, err := s.handlers.GetMap.Handle(r.Context(), &appgame.GetMapQuery{
		GameID:     gameID(r),
		Round:      roundNumber,
		PlayerName: r.URL.Query().Get("playerName"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) getPlayerView(w http.ResponseWriter, r *http.Request) {
	roundNumber := -1
	if raw := r.URL.Query().Get("round"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, shared.NewValidationError("round", "must be an integer"))
			return
		}
		roundNumber = parsed
	}

	response, err := s.handlers.GetPlayerView.Handle(r.Context(), &appgame.GetPlayerViewQuery{
		GameID:      gameID(r),
		PlayerName:  mux.Vars(r)["playerName"],
		Round:       roundNumber,
		IncludeDead: r.URL.Query().Get("includeDead") == "true",
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func gameID(r *http.Request) shared.GameID {
	return shared.GameID(mux.Vars(r)["gameID"])
}

// roundFromPath reads the optional {round} path segment; -1 selects the
// current round
func roundFromPath(r *http.Request) (int, error) {
	raw, ok := mux.Vars(r)["round"]
	if !ok {
		return -1, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, shared.NewValidationError("round", "must be an integer")
	}
	return parsed, nil
}
