package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/insuvit/storefront/internal/api/middleware"
	"github.com/insuvit/storefront/internal/errors"
	"github.com/insuvit/storefront/internal/models"
	service "github.com/insuvit/storefront/internal/services"
	"github.com/insuvit/storefront/internal/utils"
	"github.com/insuvit/storefront/internal/utils/response"
)

type UserHandler struct {
	sessionService *service.SessionService
	validator      *validator.Validate
}

func NewUserHandler(sessionService *service.SessionService) *UserHandler {
	return &UserHandler{sessionService: sessionService, validator: validator.New()}
}

func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())
		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.sessionService.Login(r.Context(), owner, &req)
		if err != nil {
			logger.Warn("Login failed", "email", req.Email, "error", err.Error())
			response.Error(w, err)

			return
		}

		logger.Info("User logged in", "email", req.Email)
		response.SuccessWithNotice(w, http.StatusOK, resp,
			fmt.Sprintf("Welcome back, %s!", resp.User.FirstName), response.SeveritySuccess)
	}
}

func (h *UserHandler) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())
		logger := middleware.LoggerFromContext(r.Context())

		var req models.RegisterRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.sessionService.Register(r.Context(), owner, &req)
		if err != nil {
			logger.Warn("Registration failed", "email", req.Email, "error", err.Error())
			response.Error(w, err)

			return
		}

		logger.Info("User registered", "email", req.Email)
		response.SuccessWithNotice(w, http.StatusCreated, resp,
			fmt.Sprintf("Welcome aboard, %s!", resp.User.FirstName), response.SeveritySuccess)
	}
}

func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())

		if err := h.sessionService.Logout(r.Context(), owner); err != nil {
			response.Error(w, err)

			return
		}

		response.SuccessWithNotice(w, http.StatusOK, nil,
			"You have been logged out", response.SeveritySuccess)
	}
}

func (h *UserHandler) Profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())

		user, loggedIn := h.sessionService.Current(r.Context(), owner)
		if !loggedIn {
			response.Error(w, errors.UnauthorizedError("Not logged in"))

			return
		}

		response.Success(w, http.StatusOK, user)
	}
}

func (h *UserHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		owner := middleware.OwnerFromContext(r.Context())
		logger := middleware.LoggerFromContext(r.Context())

		var req models.UpdateProfileRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		user, err := h.sessionService.UpdateProfile(r.Context(), owner, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		logger.Info("Profile updated", "userId", user.ID)
		response.SuccessWithNotice(w, http.StatusOK, user,
			"Profile updated successfully", response.SeveritySuccess)
	}
}

func (h *UserHandler) ForgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.ForgotPasswordRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.sessionService.ForgotPassword(r.Context(), &req); err != nil {
			response.Error(w, err)

			return
		}

		response.SuccessWithNotice(w, http.StatusOK, nil,
			"A password reset link has been sent to your email", response.SeveritySuccess)
	}
}

func (h *UserHandler) PasswordStrength() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.PasswordStrengthRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		response.Success(w, http.StatusOK, h.sessionService.PasswordStrength(req.Password))
	}
}
