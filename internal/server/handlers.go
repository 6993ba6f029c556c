// Package server exposes the summarizer over HTTP: upload a telemetry CSV,
// receive the full text report or an NDJSON stream of per-record headline
// digests. Strictly request/response; no polling, no alerting.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"example.com/amberlink/internal/amber"
	"example.com/amberlink/internal/hostif"
	"example.com/amberlink/internal/logger"
	"example.com/amberlink/internal/report"
)

// Server holds the upload workspace and the interface mapping built once at
// startup and shared read-only across requests.
type Server struct {
	workDir    string
	uploadsDir string
	maxUpload  int64
	ifmap      map[string]hostif.Interface
	log        *logger.Logger
}

// NewServer constructs a Server rooted at a temporary workspace directory
// and resolves the host interface mapping once.
func NewServer(opts Options) (*Server, error) {
	opts = opts.withDefaults()
	storageDir := opts.StorageDir
	if storageDir == "" {
		storageDir = os.TempDir()
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, err
	}
	workDir, err := os.MkdirTemp(storageDir, "amberd-")
	if err != nil {
		return nil, err
	}
	uploadsDir := filepath.Join(workDir, "uploads")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		os.RemoveAll(workDir)
		return nil, err
	}
	s := &Server{
		workDir:    workDir,
		uploadsDir: uploadsDir,
		maxUpload:  opts.MaxUploadBytes,
		ifmap:      hostif.NewResolver(opts.ResolveTimeout).Resolve(),
		log:        logger.New(),
	}
	s.log.Infof("resolved %d host interface(s)", len(s.ifmap))
	return s, nil
}

// Close removes any temporary state associated with the server.
func (s *Server) Close() error {
	if s == nil || s.workDir == "" {
		return nil
	}
	return os.RemoveAll(s.workDir)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"interfaces": len(s.ifmap),
	})
}

// handleSummarize renders the uploaded file's records as one plain-text
// report stream.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	records, name, ok := s.uploadedRecords(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	now := time.Now()
	for i, rec := range records {
		sum := report.Summarize(rec, s.ifmap, name, i, now)
		if err := report.WriteText(w, sum); err != nil {
			s.log.Errorf("write report: %v", err)
			return
		}
	}
}

// handleHeadlines streams one NDJSON headline record per telemetry row.
func (s *Server) handleHeadlines(w http.ResponseWriter, r *http.Request) {
	records, name, ok := s.uploadedRecords(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/x-ndjson")
	stream := newHeadlineStream(w)
	now := time.Now()
	for i, rec := range records {
		sum := report.Summarize(rec, s.ifmap, name, i, now)
		if err := stream.Write(sum.ToHeadlineRecord()); err != nil {
			s.log.Errorf("write headline: %v", err)
			return
		}
	}
}

// uploadedRecords saves the multipart upload and parses it. On failure it
// writes the HTTP error itself and returns ok=false.
func (s *Server) uploadedRecords(w http.ResponseWriter, r *http.Request) ([]amber.Record, string, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, "", false
	}
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		http.Error(w, fmt.Sprintf("parse multipart: %v", err), http.StatusBadRequest)
		return nil, "", false
	}
	fh := firstFile(r.MultipartForm)
	if fh == nil {
		http.Error(w, "no file provided", http.StatusBadRequest)
		return nil, "", false
	}
	path, err := s.saveUploadedFile(fh)
	if err != nil {
		http.Error(w, fmt.Sprintf("save upload %s: %v", fh.Filename, err), http.StatusBadRequest)
		return nil, "", false
	}
	defer os.Remove(path)

	records, err := amber.ReadFile(path)
	if err != nil {
		http.Error(w, fmt.Sprintf("parse %s: %v", fh.Filename, err), http.StatusBadRequest)
		return nil, "", false
	}
	if len(records) == 0 {
		http.Error(w, fmt.Sprintf("%s: %v", fh.Filename, amber.ErrNoData), http.StatusUnprocessableEntity)
		return nil, "", false
	}
	return records, fh.Filename, true
}

func firstFile(form *multipart.Form) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	for _, files := range form.File {
		for _, fh := range files {
			return fh
		}
	}
	return nil
}

func (s *Server) saveUploadedFile(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", errors.New("nil file header")
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	ext := filepath.Ext(fh.Filename)
	pattern := "upload-*"
	if ext != "" {
		pattern = fmt.Sprintf("upload-*%s", ext)
	}
	dest, err := os.CreateTemp(s.uploadsDir, pattern)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dest, src); err != nil {
		dest.Close()
		os.Remove(dest.Name())
		return "", err
	}
	if err := dest.Close(); err != nil {
		return "", err
	}
	return dest.Name(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
