package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jvmedeiros/gym-checkin-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
	role     domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		name:     "Test User",
		email:    fmt.Sprintf("testuser_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
		role:     domain.RoleMember,
	}
}

// WithName sets the name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRole sets the role
func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Role:         b.role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user in the database and logs in via the API,
// returning the user and an access token. Unlike registering through the API,
// this honors the builder's role.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	reqBody := map[string]string{
		"email":    b.email,
		"password": password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/sessions"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to log in user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return user, authResp.AccessToken
}

// GymBuilder creates test gyms with a builder pattern
type GymBuilder struct {
	title     string
	latitude  float64
	longitude float64
}

// NewGymBuilder creates a new GymBuilder with default values
func NewGymBuilder() *GymBuilder {
	return &GymBuilder{
		title:     fmt.Sprintf("Test Gym %s", uuid.New().String()[:8]),
		latitude:  -23.1782073,
		longitude: -45.8184834,
	}
}

// WithTitle sets the title
func (b *GymBuilder) WithTitle(title string) *GymBuilder {
	b.title = title
	return b
}

// WithCoordinates sets the gym's location
func (b *GymBuilder) WithCoordinates(latitude, longitude float64) *GymBuilder {
	b.latitude = latitude
	b.longitude = longitude
	return b
}

// Build creates the gym in the database
func (b *GymBuilder) Build(t *testing.T, db *gorm.DB) *domain.Gym {
	t.Helper()

	gym := &domain.Gym{
		ID:        uuid.New(),
		Title:     b.title,
		Latitude:  b.latitude,
		Longitude: b.longitude,
		CreatedAt: time.Now(),
	}

	if err := db.Create(gym).Error; err != nil {
		t.Fatalf("failed to create gym: %v", err)
	}

	return gym
}

// CheckInBuilder creates test check-ins with a builder pattern
type CheckInBuilder struct {
	userID      uuid.UUID
	gymID       uuid.UUID
	createdAt   time.Time
	validatedAt *time.Time
}

// NewCheckInBuilder creates a new CheckInBuilder for the given user and gym
func NewCheckInBuilder(userID, gymID uuid.UUID) *CheckInBuilder {
	return &CheckInBuilder{
		userID:    userID,
		gymID:     gymID,
		createdAt: time.Now(),
	}
}

// WithCreatedAt sets the creation timestamp (and the derived day bucket)
func (b *CheckInBuilder) WithCreatedAt(createdAt time.Time) *CheckInBuilder {
	b.createdAt = createdAt
	return b
}

// Validated marks the check-in as validated at the given time
func (b *CheckInBuilder) Validated(at time.Time) *CheckInBuilder {
	b.validatedAt = &at
	return b
}

// Build creates the check-in in the database
func (b *CheckInBuilder) Build(t *testing.T, db *gorm.DB) *domain.CheckIn {
	t.Helper()

	checkIn := &domain.CheckIn{
		ID:          uuid.New(),
		UserID:      b.userID,
		GymID:       b.gymID,
		Day:         domain.DayOf(b.createdAt),
		CreatedAt:   b.createdAt,
		ValidatedAt: b.validatedAt,
	}

	if err := db.Create(checkIn).Error; err != nil {
		t.Fatalf("failed to create check-in: %v", err)
	}

	return checkIn
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
