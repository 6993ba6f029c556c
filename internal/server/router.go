package server

import "net/http"

// NewRouter wires HTTP routes to the server's handlers.
func NewRouter(s *Server) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/summarize", s.handleSummarize)
	mux.HandleFunc("/headlines", s.handleHeadlines)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return mux
}
