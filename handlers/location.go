package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Danchouvzv/nevsluh/models"
	"github.com/Danchouvzv/nevsluh/pkg"
	"github.com/Danchouvzv/nevsluh/services"
)

// LocationHandler, yer kaydı endpoint'lerini yöneten struct.
type LocationHandler struct {
	locationService services.LocationService
}

// NewLocationHandler, constructor.
func NewLocationHandler(locationService services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// Create godoc
// POST /api/locations
func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	location, err := h.locationService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, location)
}

// Get godoc
// GET /api/locations/{id}
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	location, err := h.locationService.GetByID(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, location)
}
