package membership

// RegisterRequest for POST /registration
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest for POST /login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateProfileRequest for PUT /profile/update
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

// TokenResponse returned after login
type TokenResponse struct {
	Token string `json:"token"`
}

// ProfileResponse represents the profile payload
type ProfileResponse struct {
	Email        string  `json:"email"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	ProfileImage *string `json:"profile_image"`
}

// NewProfileResponse builds the profile payload from a user
func NewProfileResponse(u *User) *ProfileResponse {
	resp := &ProfileResponse{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
	if u.ProfileImage.Valid {
		img := u.ProfileImage.String
		resp.ProfileImage = &img
	}
	return resp
}
