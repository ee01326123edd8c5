package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/lutogin/listingcharts/src/charts"
	"github.com/lutogin/listingcharts/src/listings"
	"github.com/lutogin/listingcharts/src/logging"
)

// ErrorResponse is the JSON body of every non-2xx API reply.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ListingsResponse is the /api/listings body.
type ListingsResponse struct {
	Count    int                     `json:"count"`
	ByStatus map[listings.Status]int `json:"by_status"`
	Listings []listings.Listing      `json:"listings"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warnf("[server] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:     http.StatusText(status),
		Message:   msg,
		RequestID: requestID(r),
		Timestamp: time.Now().UTC(),
	})
}

// queryToggle reads a boolean query flag; absent or unparsable values keep def.
// "0", "false", "off" and "no" switch it off.
func queryToggle(r *http.Request, name string, def bool) bool {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "off", "no":
		return false
	case "on", "yes":
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func (s *Server) toggles(r *http.Request) charts.Toggles {
	return charts.Toggles{
		ShowSubject:   queryToggle(r, "subject", s.cfg.ShowSubject),
		ShowTrendline: queryToggle(r, "trend", s.cfg.ShowTrendline),
	}
}

func (s *Server) view(name string, r *http.Request) charts.View {
	if name == "land-price" {
		return charts.NewLandPriceView(s.cfg.Width, s.cfg.LandHeight, s.toggles(r))
	}
	return charts.NewPriceChangeView(s.cfg.Width, s.cfg.Height)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	format, err := charts.ParseFormat(vars["format"])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	v := s.view(vars["chart"], r)

	start := time.Now()
	var buf bytes.Buffer
	_, err = charts.Render(v, format, &buf)
	s.metrics.ObserveRender(v.Name(), string(format), start, err)
	if err != nil {
		logging.Errorf("[server] %s: %v", requestID(r), err)
		writeError(w, r, http.StatusInternalServerError, "chart rendering failed")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		logging.Debugf("[server] %s: write chart: %v", requestID(r), err)
	}
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	ls := listings.Mock()
	writeJSON(w, http.StatusOK, ListingsResponse{
		Count:    len(ls),
		ByStatus: listings.CountByStatus(ls),
		Listings: ls,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "no such endpoint")
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, r.Method+" is not allowed here")
}
