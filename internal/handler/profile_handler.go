package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/profile"
)

// ProfileService is the profile use-case surface the handler needs
type ProfileService interface {
	Load(ctx context.Context) (*domain.Profile, error)
	Save(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	Dump(ctx context.Context) (*domain.Snapshot, error)
	Delete(ctx context.Context) error
}

// ProfileRequest is the PUT body; dates are YYYY-MM-DD
type ProfileRequest struct {
	Name            string `json:"name"`
	Gender          string `json:"gender"`
	DateOfBirth     string `json:"dateOfBirth"`
	Salaried        bool   `json:"salaried"`
	ResidingInMetro bool   `json:"residingInMetro"`
	Email           string `json:"email"`
	PAN             string `json:"pan"`
	Phone           string `json:"phone"`
	Occupation      string `json:"occupation"`
}

// ProfileHandler handles profile endpoints.
type ProfileHandler struct {
	profiles ProfileService
	log      *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

// Get handles GET /api/v1/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profiles.Load(c.Request.Context())
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	if p == nil {
		HandleError(c, h.log, domain.ErrProfileNotFound)
		return
	}
	RespondOK(c, p)
}

// Put handles PUT /api/v1/profile
func (h *ProfileHandler) Put(c *gin.Context) {
	var req ProfileRequest
	if !bindJSON(c, &req, maxProfileBody) {
		return
	}

	dob, err := profile.ParseDate(req.DateOfBirth)
	if err != nil {
		HandleError(c, h.log, err)
		return
	}

	saved, err := h.profiles.Save(c.Request.Context(), &domain.Profile{
		Name:            req.Name,
		Gender:          req.Gender,
		DateOfBirth:     dob,
		Salaried:        req.Salaried,
		ResidingInMetro: req.ResidingInMetro,
		Email:           req.Email,
		PAN:             req.PAN,
		Phone:           req.Phone,
		Occupation:      req.Occupation,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, saved)
}

// Delete handles DELETE /api/v1/profile
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context()); err != nil {
		HandleError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Dump handles GET /api/v1/profile/dump
func (h *ProfileHandler) Dump(c *gin.Context) {
	snapshot, err := h.profiles.Dump(c.Request.Context())
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, snapshot)
}
