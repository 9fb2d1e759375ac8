package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jvmedeiros/gym-checkin-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"name":     "John Doe",
				"email":    "john@example.com",
				"password": "password123",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "john@example.com", result.User.Email)
				assert.Equal(t, "member", result.User.Role)
				assert.NotEmpty(t, result.AccessToken)
				assert.NotEmpty(t, result.RefreshToken)
			},
		},
		{
			name: "missing email",
			request: map[string]string{
				"name":     "John Doe",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			request: map[string]string{
				"name":     "John Doe",
				"email":    "not-an-email",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "short password",
			request: map[string]string{
				"name":     "John Doe",
				"email":    "john@example.com",
				"password": "12345",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"name":     "Jane Doe",
				"email":    "existing@example.com",
				"password": "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@example.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			body, _ := json.Marshal(tt.request)
			resp, err := http.Post(ts.APIURL("/users"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithName("Profile User").
		WithEmail("profile@example.com").
		BuildAndAuthenticate(t, ts)

	// /me with a valid token
	req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/me"), nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var me struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	testutil.AssertJSONResponse(t, resp, &me)
	assert.Equal(t, user.ID.String(), me.ID)
	assert.Equal(t, "Profile User", me.Name)

	// /me without a token
	req = testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/me"), nil, "")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)

	// wrong password
	body, _ := json.Marshal(map[string]string{
		"email":    "profile@example.com",
		"password": "wrongpassword",
	})
	resp, err = http.Post(ts.APIURL("/sessions"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
}

func TestAuthHandler_Refresh(t *testing.T) {
	ts := testutil.NewTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"name":     "Refresh User",
		"email":    "refresh@example.com",
		"password": "password123",
	})
	resp, err := http.Post(ts.APIURL("/users"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &registered)

	refreshBody := map[string]string{"refreshToken": registered.RefreshToken}
	req := testutil.CreateAuthenticatedRequest(t, http.MethodPatch, ts.APIURL("/token/refresh"), refreshBody, "")

	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	testutil.AssertStatusCode(t, resp2, http.StatusOK)

	var rotated testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp2, &rotated)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, rotated.RefreshToken)
}
