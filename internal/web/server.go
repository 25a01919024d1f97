package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Snapshot is the live score view served to overlays. The program
// publishes a fresh snapshot every frame; the practice engine itself
// is never touched from the handler goroutine.
type Snapshot struct {
	Song     string  `json:"song"`
	Mode     string  `json:"mode"`
	State    string  `json:"state"`
	Elapsed  float64 `json:"elapsedSeconds"`
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	Mistakes uint64  `json:"mistakes"`
}

type Server struct {
	srv  *http.Server
	snap atomic.Pointer[Snapshot]
}

func NewServer(addr string) *Server {
	s := &Server{}
	r := mux.NewRouter()
	r.HandleFunc("/v1/score", s.handleScore).Methods("GET")
	s.srv = &http.Server{Addr: addr, Handler: cors.Default().Handler(r)}
	return s
}

func (s *Server) Publish(snap Snapshot) {
	s.snap.Store(&snap)
}

func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); nil != err && err != http.ErrServerClosed {
			log.Println("score endpoint stopped", err)
		}
	}()
}

func (s *Server) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); nil != err {
		log.Println("unable to stop score endpoint", err)
	}
}

func (s *Server) handleScore(w http.ResponseWriter, _ *http.Request) {
	snap := s.snap.Load()
	if nil == snap {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); nil != err {
		log.Println("unable to encode score snapshot", err)
	}
}
