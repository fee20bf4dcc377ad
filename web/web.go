// Package web serves daily statistics and normalised tables for the datasets
// in a directory as JSON.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mtraver/inflammation/inflammation"
	"github.com/mtraver/inflammation/load"
	"github.com/mtraver/inflammation/logging"
)

type Server struct {
	dataDir string
	tables  *load.Cached
	zeroMax inflammation.ZeroMaxPolicy
	mux     *http.ServeMux
}

func NewServer(dataDir string, tables *load.Cached, zeroMax inflammation.ZeroMaxPolicy) *Server {
	s := &Server{
		dataDir: dataDir,
		tables:  tables,
		zeroMax: zeroMax,
		mux:     http.NewServeMux(),
	}

	s.mux.HandleFunc("/datasets", s.datasetsHandler)
	s.mux.HandleFunc("/stats", s.statsHandler)
	s.mux.HandleFunc("/normalised", s.normalisedHandler)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type statsResponse struct {
	Dataset string                    `json:"dataset"`
	Days    []inflammation.DaySummary `json:"days"`
}

type normalisedResponse struct {
	Dataset string      `json:"dataset"`
	Rows    [][]float64 `json:"rows"`
}

func (s *Server) datasetsHandler(w http.ResponseWriter, r *http.Request) {
	names, err := load.Datasets(s.dataDir)
	if err != nil {
		logging.Error("failed to list datasets", "dir", s.dataDir, "error", err)
		http.Error(w, "could not list datasets", http.StatusInternalServerError)
		return
	}

	writeJSON(w, names)
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	name, t, ok := s.table(w, r)
	if !ok {
		return
	}

	writeJSON(w, statsResponse{
		Dataset: name,
		Days:    inflammation.Summarise(t),
	})
}

func (s *Server) normalisedHandler(w http.ResponseWriter, r *http.Request) {
	name, t, ok := s.table(w, r)
	if !ok {
		return
	}

	norm, err := inflammation.PatientNormalise(t, inflammation.WithZeroMax(s.zeroMax))
	if errors.Is(err, inflammation.ErrZeroMax) {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	} else if err != nil {
		logging.Error("failed to normalise", logging.DatasetKey, name, "error", err)
		http.Error(w, "could not normalise dataset", http.StatusInternalServerError)
		return
	}

	writeJSON(w, normalisedResponse{
		Dataset: name,
		Rows:    norm.Rows(),
	})
}

// table loads the dataset named in the request. If it returns false then an
// error response has already been written.
func (s *Server) table(w http.ResponseWriter, r *http.Request) (string, inflammation.Table, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return "", inflammation.Table{}, false
	}

	name := r.URL.Query().Get("dataset")
	if name == "" {
		http.Error(w, "dataset parameter is required", http.StatusBadRequest)
		return "", inflammation.Table{}, false
	}

	path, err := load.DatasetPath(s.dataDir, name)
	switch {
	case errors.Is(err, load.ErrBadDataset):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", inflammation.Table{}, false
	case errors.Is(err, load.ErrUnknownDataset):
		http.NotFound(w, r)
		return "", inflammation.Table{}, false
	case err != nil:
		logging.Error("failed to find dataset", logging.DatasetKey, name, "error", err)
		http.Error(w, "could not find dataset", http.StatusInternalServerError)
		return "", inflammation.Table{}, false
	}

	t, err := s.tables.CSV(path)
	if err != nil {
		logging.Error("failed to load dataset", logging.DatasetKey, name, "error", err)
		http.Error(w, "could not load dataset", http.StatusInternalServerError)
		return "", inflammation.Table{}, false
	}

	logging.Debug("serving dataset", logging.DatasetKey, name, "path", r.URL.Path)
	return name, t, true
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error("failed to marshal response", "error", err)
		http.Error(w, "could not encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
