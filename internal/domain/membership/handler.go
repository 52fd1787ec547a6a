package membership

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nusapay/nusapay-api/internal/middleware"
	"github.com/nusapay/nusapay-api/internal/pkg/response"
	"github.com/nusapay/nusapay-api/internal/pkg/storage"
	"github.com/nusapay/nusapay-api/internal/pkg/validator"
)

// Handler handles membership HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates membership handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Validation(w, "Invalid JSON body")
		return
	}

	if msg := validator.Validate(&req); msg != "" {
		response.Validation(w, msg)
		return
	}

	if err := h.service.Register(r.Context(), &req); err != nil {
		switch {
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Validation(w, "Email already registered")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("registration failed")
			response.Internal(w)
		}
		return
	}

	response.Created(w, "Registration successful, please login", nil)
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Validation(w, "Invalid JSON body")
		return
	}

	if msg := validator.Validate(&req); msg != "" {
		response.Validation(w, msg)
		return
	}

	token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.AuthFailed(w, "Wrong email or password")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("login failed")
			response.Internal(w)
		}
		return
	}

	response.OK(w, "Login successful", TokenResponse{Token: token})
}

// GetProfile handles GET /profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	u, err := h.service.Profile(r.Context(), email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		log.Error().Err(err).Str("email", email).Msg("profile fetch failed")
		response.Internal(w)
		return
	}

	response.OK(w, "Success", NewProfileResponse(u))
}

// UpdateProfile handles PUT /profile/update
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Validation(w, "Invalid JSON body")
		return
	}

	if msg := validator.Validate(&req); msg != "" {
		response.Validation(w, msg)
		return
	}

	email := middleware.GetEmail(r.Context())
	u, err := h.service.UpdateProfile(r.Context(), email, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		log.Error().Err(err).Str("email", email).Msg("profile update failed")
		response.Internal(w)
		return
	}

	response.OK(w, "Profile updated", NewProfileResponse(u))
}

// UploadProfileImage handles PUT /profile/image (multipart form, field
// "profile_image", jpeg/png up to 5MB)
func (h *Handler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(storage.MaxAvatarSize); err != nil {
		response.Validation(w, "Image format not allowed")
		return
	}

	file, _, err := r.FormFile("profile_image")
	if err != nil {
		response.Validation(w, "Image format not allowed")
		return
	}
	defer file.Close()

	email := middleware.GetEmail(r.Context())
	u, err := h.service.SaveProfileImage(r.Context(), email, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, storage.ErrFileTooLarge):
			response.Validation(w, "Image exceeds the 5MB limit")
		case errors.Is(err, storage.ErrInvalidMimeType), errors.Is(err, storage.ErrEmptyFile):
			response.Validation(w, "Image format not allowed")
		default:
			log.Error().Err(err).Str("email", email).Msg("profile image upload failed")
			response.Internal(w)
		}
		return
	}

	response.OK(w, "Profile image updated", NewProfileResponse(u))
}
