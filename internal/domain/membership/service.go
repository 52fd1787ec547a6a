package membership

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nusapay/nusapay-api/internal/pkg/imaging"
	"github.com/nusapay/nusapay-api/internal/pkg/jwt"
	"github.com/nusapay/nusapay-api/internal/pkg/password"
	"github.com/nusapay/nusapay-api/internal/pkg/storage"
)

// Service handles membership business logic
type Service struct {
	repo      Repository
	jwtSvc    *jwt.Service
	files     storage.Storage
	processor *imaging.Processor
}

// NewService creates membership service
func NewService(repo Repository, jwtSvc *jwt.Service, files storage.Storage, processor *imaging.Processor) *Service {
	return &Service{
		repo:      repo,
		jwtSvc:    jwtSvc,
		files:     files,
		processor: processor,
	}
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) error {
	email := normalizeEmail(req.Email)

	hash, err := password.Hash(req.Password)
	if err != nil {
		return err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return err
	}

	log.Info().Str("email", email).Msg("user registered")
	return nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password both return ErrInvalidCredentials to avoid user enumeration.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if err == ErrUserNotFound {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return s.jwtSvc.Generate(u.Email)
}

// Profile returns the profile for the authenticated email
func (s *Service) Profile(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// UpdateProfile updates the name fields and returns the fresh profile
func (s *Service) UpdateProfile(ctx context.Context, email string, req *UpdateProfileRequest) (*User, error) {
	if err := s.repo.UpdateName(ctx, email, req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	return s.repo.GetByEmail(ctx, email)
}

// SaveProfileImage validates, downscales, and stores an avatar, then
// records its public URL on the user row.
func (s *Service) SaveProfileImage(ctx context.Context, email string, file io.Reader) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	data, _, err := storage.ValidateImage(file, storage.MaxAvatarSize)
	if err != nil {
		return nil, err
	}

	processed, mimeType, err := s.processor.Process(bytes.NewReader(data))
	if err != nil {
		// decode failures on a sniffed image mean a corrupt file
		return nil, storage.ErrInvalidMimeType
	}

	key := fmt.Sprintf("avatars/%s%s", u.ID, storage.ExtensionForMime(mimeType))
	if err := s.files.Put(ctx, key, bytes.NewReader(processed), mimeType); err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}

	url := s.files.GetURL(key)
	if err := s.repo.UpdateProfileImage(ctx, email, url); err != nil {
		return nil, err
	}

	log.Info().Str("email", email).Str("key", key).Int("bytes", len(processed)).Msg("profile image updated")

	u.ProfileImage.String = url
	u.ProfileImage.Valid = true
	u.UpdatedAt = time.Now()
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
