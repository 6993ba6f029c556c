package server

import (
	"encoding/json"
	"net/http"

	"example.com/amberlink/internal/report"
)

// headlineStream writes newline-delimited headline records, flushing after
// each one so clients see rows as they are produced.
type headlineStream struct {
	enc     *json.Encoder
	flusher http.Flusher
}

func newHeadlineStream(w http.ResponseWriter) *headlineStream {
	s := &headlineStream{enc: json.NewEncoder(w)}
	if f, ok := w.(http.Flusher); ok {
		s.flusher = f
	}
	return s
}

func (s *headlineStream) Write(h report.HeadlineRecord) error {
	if err := s.enc.Encode(h); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
