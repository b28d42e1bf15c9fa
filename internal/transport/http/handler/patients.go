package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docucare-api/internal/application/patient"
	"github.com/docucare-api/internal/domain"
	"github.com/docucare-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// PatientHandler handles medical profile endpoints.
type PatientHandler struct {
	svc *patient.Service
}

func NewPatientHandler(svc *patient.Service) *PatientHandler { return &PatientHandler{svc: svc} }

// Upsert creates or replaces a profile. Non-admin callers may only touch the
// profile attached to their own account.
func (h *PatientHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpsertPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if claims.Role != domain.RoleAdmin {
		req.UserID = claims.UserID
	}
	p, created, err := h.svc.Upsert(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, p)
}

// GetMine returns the calling user's own profile.
func (h *PatientHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p, err := h.svc.GetByUser(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "patient deleted"})
}

// MedicalHistory returns completed visits. Patients read their own history;
// doctors and admins may read any patient's.
func (h *PatientHandler) MedicalHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID := chi.URLParam(r, "userID")
	if claims.Role == domain.RolePatient && claims.UserID != userID {
		writeError(w, http.StatusForbidden, "cannot read another patient's history")
		return
	}
	history, err := h.svc.MedicalHistory(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
