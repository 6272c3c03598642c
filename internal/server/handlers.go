package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/denizgun/symtriage/internal/analyze"
	"github.com/denizgun/symtriage/internal/logger"
)

type analyzeRequest struct {
	Symptoms    []string        `json:"symptoms"`
	PatientInfo analyze.Patient `json:"patient_info"`
}

type analyzeResponse struct {
	Success   bool               `json:"success"`
	Diagnosis *analyze.Diagnosis `json:"diagnosis,omitempty"`
	Error     string             `json:"error,omitempty"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Version: Version})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)

	if err := validateRequest(r.Context(), s.router, r); err != nil {
		s.logger.Debug("request rejected: %v", err)
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	symptoms := sanitizeAll(req.Symptoms)
	patient := analyze.Patient{
		Age:            sanitizeText(req.PatientInfo.Age),
		Gender:         sanitizeText(req.PatientInfo.Gender),
		MedicalHistory: sanitizeText(req.PatientInfo.MedicalHistory),
	}

	if !hasSymptom(symptoms) {
		s.writeError(w, http.StatusBadRequest, "No symptoms provided")
		return
	}

	start := time.Now()
	diagnosis, err := s.engine.Analyze(r.Context(), symptoms, patient)
	if err != nil {
		s.logger.Error("analysis failed: %v", err)
		s.writeError(w, http.StatusInternalServerError, "Analysis could not be completed")
		return
	}

	s.logger.DebugWithFields("analysis served", []logger.Field{
		logger.Count(len(diagnosis.SymptomsAnalyzed)),
		logger.Duration(time.Since(start)),
	})
	writeJSON(w, http.StatusOK, analyzeResponse{Success: true, Diagnosis: diagnosis})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, analyzeResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func hasSymptom(symptoms []string) bool {
	for _, s := range symptoms {
		if s != "" {
			return true
		}
	}
	return false
}
