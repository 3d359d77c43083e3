package httpapi

import (
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/mlorenz/robotgame-go/internal/application/mediator"
)

// Handlers bundles the application handlers the HTTP boundary dispatches to
type Handlers struct {
	CreateGame     mediator.RequestHandler
	JoinGame       mediator.RequestHandler
	Lifecycle      mediator.RequestHandler
	ListGames      mediator.RequestHandler
	SubmitCommands mediator.RequestHandler
	GetMap         mediator.RequestHandler
	GetPlayerView  mediator.RequestHandler
}

// Server is the HTTP adapter: it translates requests into application
// commands and queries, and application errors into status codes
type Server struct {
	handlers Handlers
	limiter  *rate.Limiter
}

// NewServer creates the HTTP adapter. A zero requestsPerSecond disables
// throttling.
func NewServer(handlers Handlers, requestsPerSecond float64, burst int) *Server {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
	return &Server{handlers: handlers, limiter: limiter}
}

// Router builds the route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	if s.limiter != nil {
		r.Use(s.throttle)
	}

	r.HandleFunc("/health", s.health).Methods("GET")

	r.HandleFunc("/games", s.createGame).Methods("POST")
	r.HandleFunc("/games", s.listGames).Methods("GET")
	r.HandleFunc("/games/{gameID}", s.deleteGame).Methods("DELETE")
	r.HandleFunc("/games/{gameID}/players", s.joinGame).Methods("POST")
	r.HandleFunc("/games/{gameID}/gameCommands/start", s.startGame).Methods("POST")
	r.HandleFunc("/games/{gameID}/gameCommands/end", s.endGame).Methods("POST")
	r.HandleFunc("/games/{gameID}/commands", s.submitCommands).Methods("POST")
	r.HandleFunc("/games/{gameID}/map", s.getMap).Methods("GET")
	r.HandleFunc("/games/{gameID}/map/rounds/{round}", s.getMap).Methods("GET")
	r.HandleFunc("/games/{gameID}/players/{playerName}", s.getPlayerView).Methods("GET")

	return r
}
