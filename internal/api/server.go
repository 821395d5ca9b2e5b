// Package api exposes sensor readings and calibration data over HTTP.
package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/netft/internal/ftstats"
	"github.com/banshee-data/netft/internal/ftstore"
	"github.com/banshee-data/netft/internal/netft"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// SensorReader is the slice of the netft client the API needs.
type SensorReader interface {
	ReadFT() (netft.Reading, error)
	ReadCalibrationInfo() (netft.CalibrationInfo, error)
	Bias() error
}

type Server struct {
	sensor SensorReader
	store  *ftstore.Store
}

func NewServer(sensor SensorReader, store *ftstore.Store) *Server {
	return &Server{
		sensor: sensor,
		store:  store,
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reading", s.showLiveReading)
	mux.HandleFunc("/api/reading/latest", s.showLatestReading)
	mux.HandleFunc("/api/calibration", s.showCalibration)
	mux.HandleFunc("/api/stats", s.showSessionStats)
	mux.HandleFunc("/api/bias", s.sendBiasHandler)
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// showLiveReading performs one synchronous RDT exchange with the sensor.
func (s *Server) showLiveReading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	reading, err := s.sensor.ReadFT()
	if err != nil {
		s.writeJSONError(w, http.StatusBadGateway, "sensor read failed: "+err.Error())
		return
	}
	json.NewEncoder(w).Encode(reading)
}

// showLatestReading returns the most recent stored sample.
func (s *Server) showLatestReading(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	latest, err := s.store.LatestReading()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "query failed: "+err.Error())
		return
	}
	if latest == nil {
		s.writeJSONError(w, http.StatusNotFound, "no readings recorded")
		return
	}
	json.NewEncoder(w).Encode(latest)
}

type calibrationResponse struct {
	ForceUnit       string    `json:"force_unit"`
	TorqueUnit      string    `json:"torque_unit"`
	CountsPerForce  uint32    `json:"counts_per_force"`
	CountsPerTorque uint32    `json:"counts_per_torque"`
	ScaleFactors    [6]uint16 `json:"scale_factors"`
	Summary         string    `json:"summary"`
}

// showCalibration queries the sensor's calibration record and resolves
// the unit codes to names.
func (s *Server) showCalibration(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	info, err := s.sensor.ReadCalibrationInfo()
	if err != nil {
		s.writeJSONError(w, http.StatusBadGateway, "calibration query failed: "+err.Error())
		return
	}
	json.NewEncoder(w).Encode(calibrationResponse{
		ForceUnit:       netft.ForceUnitName(info.ForceUnitCode),
		TorqueUnit:      netft.TorqueUnitName(info.TorqueUnitCode),
		CountsPerForce:  info.CountsPerForce,
		CountsPerTorque: info.CountsPerTorque,
		ScaleFactors:    info.ScaleFactors,
		Summary:         info.Summary(),
	})
}

// showSessionStats summarises a recorded session per axis.
func (s *Server) showSessionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	session := r.URL.Query().Get("session")
	if session == "" {
		s.writeJSONError(w, http.StatusBadRequest, "session query parameter is required")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeJSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	timed, err := s.store.Readings(session, limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, "query failed: "+err.Error())
		return
	}

	readings := make([]netft.Reading, len(timed))
	for i, tr := range timed {
		readings[i] = tr.Reading
	}
	json.NewEncoder(w).Encode(ftstats.Summarize(readings))
}

// sendBiasHandler issues the fire-and-forget zero-offset command.
func (s *Server) sendBiasHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.sensor.Bias(); err != nil {
		http.Error(w, "Failed to send bias command", http.StatusBadGateway)
		return
	}
	io.WriteString(w, "Bias command sent")
}
