package handler

import (
	"encoding/json"
	"net/http"

	"github.com/docucare-api/internal/application/doctor"
	"github.com/docucare-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// DoctorHandler handles doctor roster endpoints.
type DoctorHandler struct {
	svc *doctor.Service
}

func NewDoctorHandler(svc *doctor.Service) *DoctorHandler { return &DoctorHandler{svc: svc} }

func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "doctor deleted"})
}
