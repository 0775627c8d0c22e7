package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
	"github.com/BruksfildServices01/barber-queue/internal/validators"
)

type AuthHandler struct {
	barbers barber.Repository
	secret  string

	// EmailDomainOK faz lookup de DNS; testes trocam por um stub.
	EmailDomainOK func(email string) bool
	Now           func() time.Time
}

func NewAuthHandler(barbers barber.Repository, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		barbers:       barbers,
		secret:        jwtSecret,
		EmailDomainOK: validators.IsEmailDomainValid,
		Now:           time.Now,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbershopName    string `json:"barbershop_name" binding:"required"`
	BarbershopSlug    string `json:"barbershop_slug" binding:"required"`
	BarbershopPhone   string `json:"barbershop_phone"`
	BarbershopAddress string `json:"barbershop_address"`
	Timezone          string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	slug := strings.ToLower(strings.TrimSpace(req.BarbershopSlug))
	exists, err := h.barbers.SlugExists(ctx, slug)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if exists {
		httperr.FromError(c, httperr.ErrConflict("slug_already_exists"))
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if email == "" {
		httperr.FromError(c, httperr.ErrValidation("invalid_email"))
		return
	}
	if !h.EmailDomainOK(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.FromError(c, httperr.ErrValidation("invalid_timezone"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}

	shop := &models.Barbershop{
		Name:     strings.TrimSpace(req.BarbershopName),
		Slug:     slug,
		Phone:    req.BarbershopPhone,
		Address:  req.BarbershopAddress,
		Timezone: tz,
	}
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "owner",
	}

	if err := h.barbers.CreateBarber(ctx, shop, user); err != nil {
		if errors.Is(err, barber.ErrEmailTaken) {
			httperr.FromError(c, httperr.ErrConflict("email_already_used"))
			return
		}
		httperr.FromError(c, err)
		return
	}
	user.Barbershop = *shop

	h.respond(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)

	user, err := h.barbers.FindBarberByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, barber.ErrBarberNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.FromError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	h.respond(c, http.StatusOK, user)
}

func (h *AuthHandler) respond(c *gin.Context, status int, user *models.User) {
	token, err := middleware.IssueToken(h.secret, user, h.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar o token.")
		return
	}

	c.JSON(status, gin.H{
		"user":       userView(user),
		"barbershop": user.Barbershop,
		"token":      token,
	})
}

func userView(user *models.User) gin.H {
	return gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"phone":         user.Phone,
		"role":          user.Role,
		"barbershop_id": user.BarbershopID,
	}
}
