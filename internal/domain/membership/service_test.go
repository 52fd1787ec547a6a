package membership

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nusapay/nusapay-api/internal/pkg/imaging"
	"github.com/nusapay/nusapay-api/internal/pkg/jwt"
	"github.com/nusapay/nusapay-api/internal/pkg/password"
	"github.com/nusapay/nusapay-api/internal/pkg/storage"
)

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, exists := f.users[u.Email]; exists {
		return ErrEmailAlreadyExists
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) IDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	u, ok := f.users[email]
	if !ok {
		return uuid.Nil, ErrUserNotFound
	}
	return u.ID, nil
}

func (f *fakeRepo) UpdateName(ctx context.Context, email, firstName, lastName string) error {
	u, ok := f.users[email]
	if !ok {
		return ErrUserNotFound
	}
	u.FirstName = firstName
	u.LastName = lastName
	return nil
}

func (f *fakeRepo) UpdateProfileImage(ctx context.Context, email, imageURL string) error {
	u, ok := f.users[email]
	if !ok {
		return ErrUserNotFound
	}
	u.ProfileImage.String = imageURL
	u.ProfileImage.Valid = true
	return nil
}

type fakeFiles struct {
	keys []string
}

func (f *fakeFiles) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeFiles) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeFiles) GetURL(key string) string { return "http://localhost:8080/uploads/" + key }

func newTestService(repo Repository) *Service {
	return NewService(
		repo,
		jwt.NewService("secret", time.Hour),
		&fakeFiles{},
		imaging.NewProcessor(imaging.DefaultConfig()),
	)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	err := svc.Register(ctx, &RegisterRequest{
		Email:     "  Budi@NusaPay.io ",
		FirstName: "Budi",
		LastName:  "Santoso",
		Password:  "rahasia123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Email is normalized before storage
	u, ok := repo.users["budi@nusapay.io"]
	if !ok {
		t.Fatalf("expected normalized email key, have %v", repo.users)
	}
	if u.PasswordHash == "rahasia123" {
		t.Fatal("password must not be stored in plain text")
	}
	if !password.Verify("rahasia123", u.PasswordHash) {
		t.Fatal("stored hash does not verify against the password")
	}

	token, err := svc.Login(ctx, &LoginRequest{Email: "budi@nusapay.io", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	req := &RegisterRequest{Email: "budi@nusapay.io", FirstName: "Budi", LastName: "Santoso", Password: "rahasia123"}
	if err := svc.Register(ctx, req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := svc.Register(ctx, req); !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, &RegisterRequest{
		Email: "budi@nusapay.io", FirstName: "Budi", LastName: "Santoso", Password: "rahasia123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown email are indistinguishable
	if _, err := svc.Login(ctx, &LoginRequest{Email: "budi@nusapay.io", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, &LoginRequest{Email: "nobody@nusapay.io", Password: "rahasia123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, &RegisterRequest{
		Email: "budi@nusapay.io", FirstName: "Budi", LastName: "Santoso", Password: "rahasia123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	u, err := svc.UpdateProfile(ctx, "budi@nusapay.io", &UpdateProfileRequest{FirstName: "Budiman", LastName: "Wijaya"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if u.FirstName != "Budiman" || u.LastName != "Wijaya" {
		t.Fatalf("unexpected profile: %+v", u)
	}

	if _, err := svc.UpdateProfile(ctx, "nobody@nusapay.io", &UpdateProfileRequest{FirstName: "X", LastName: "Y"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSaveProfileImage(t *testing.T) {
	repo := newFakeRepo()
	files := &fakeFiles{}
	svc := NewService(repo, jwt.NewService("secret", time.Hour), files, imaging.NewProcessor(imaging.DefaultConfig()))
	ctx := context.Background()

	if err := svc.Register(ctx, &RegisterRequest{
		Email: "budi@nusapay.io", FirstName: "Budi", LastName: "Santoso", Password: "rahasia123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	u, err := svc.SaveProfileImage(ctx, "budi@nusapay.io", bytes.NewReader(pngBytes(t, 10, 10)))
	if err != nil {
		t.Fatalf("save image failed: %v", err)
	}

	if len(files.keys) != 1 || !strings.HasPrefix(files.keys[0], "avatars/") {
		t.Fatalf("unexpected stored keys: %v", files.keys)
	}
	if !u.ProfileImage.Valid || !strings.Contains(u.ProfileImage.String, files.keys[0]) {
		t.Fatalf("profile image URL not recorded: %+v", u.ProfileImage)
	}
}

func TestSaveProfileImageRejectsNonImage(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if err := svc.Register(ctx, &RegisterRequest{
		Email: "budi@nusapay.io", FirstName: "Budi", LastName: "Santoso", Password: "rahasia123",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.SaveProfileImage(ctx, "budi@nusapay.io", strings.NewReader("definitely not an image"))
	if !errors.Is(err, storage.ErrInvalidMimeType) {
		t.Fatalf("expected ErrInvalidMimeType, got %v", err)
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
