package handlers_test

import (
	"net/http"
	"testing"

	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		fields         map[string]string
		files          map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			fields: map[string]string{
				"username": "alice",
				"email":    "alice@example.com",
				"fullName": "Alice Example",
				"password": "password123",
			},
			files:          map[string]string{"avatar": "avatar.png"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				env := testutil.DecodeEnvelope(t, resp)
				require.True(t, env.Success)
				body := string(env.Data)
				assert.Contains(t, body, `"username":"alice"`)
				assert.NotContains(t, body, "password")
				assert.NotContains(t, body, "refreshToken")
			},
		},
		{
			name: "username is normalized to lowercase",
			fields: map[string]string{
				"username": "  BobTheBuilder ",
				"email":    "bob@example.com",
				"fullName": "Bob Builder",
				"password": "password123",
			},
			files:          map[string]string{"avatar": "avatar.png"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *http.Response) {
				env := testutil.DecodeEnvelope(t, resp)
				assert.Contains(t, string(env.Data), `"username":"bobthebuilder"`)
			},
		},
		{
			name: "missing avatar",
			fields: map[string]string{
				"username": "carol",
				"email":    "carol@example.com",
				"fullName": "Carol",
				"password": "password123",
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertErrorEnvelope(t, resp, http.StatusBadRequest, "avatar file is required")
			},
		},
		{
			name: "short password",
			fields: map[string]string{
				"username": "dave",
				"email":    "dave@example.com",
				"fullName": "Dave",
				"password": "short",
			},
			files:          map[string]string{"avatar": "avatar.png"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid email",
			fields: map[string]string{
				"username": "erin",
				"email":    "not-an-email",
				"fullName": "Erin",
				"password": "password123",
			},
			files:          map[string]string{"avatar": "avatar.png"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			fields: map[string]string{
				"username": "existing",
				"email":    "other@example.com",
				"fullName": "Someone Else",
				"password": "password123",
			},
			files: map[string]string{"avatar": "avatar.png"},
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("existing").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
			checkResponse: func(t *testing.T, resp *http.Response) {
				testutil.AssertErrorEnvelope(t, resp, http.StatusConflict, "user with email or username already exists")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			body, contentType := testutil.MultipartBody(t, tt.fields, tt.files)
			resp, err := http.Post(ts.APIURL("/users/register"), contentType, body)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestUserHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("loginuser").
		WithEmail("loginuser@example.com").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "login with username",
			request: map[string]string{
				"username": user.Username,
				"password": rawPassword,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "login with email",
			request: map[string]string{
				"email":    user.Email,
				"password": rawPassword,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			request: map[string]string{
				"username": user.Username,
				"password": "wrong-password",
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "invalid user credentials",
		},
		{
			name: "unknown user",
			request: map[string]string{
				"username": "ghost",
				"password": rawPassword,
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "user does not exist",
		},
		{
			name: "neither username nor email",
			request: map[string]string{
				"password": rawPassword,
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "username or email is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := testutil.PostJSON(t, http.DefaultClient, ts.APIURL("/users/login"), tt.request)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var data struct {
					AccessToken  string `json:"accessToken"`
					RefreshToken string `json:"refreshToken"`
				}
				testutil.DecodeData(t, resp, &data)
				assert.NotEmpty(t, data.AccessToken)
				assert.NotEmpty(t, data.RefreshToken)

				cookies := resp.Cookies()
				names := make([]string, 0, len(cookies))
				for _, c := range cookies {
					names = append(names, c.Name)
					assert.True(t, c.HttpOnly, "auth cookies must be http-only")
				}
				assert.Contains(t, names, "accessToken")
				assert.Contains(t, names, "refreshToken")
			} else if tt.expectedMsg != "" {
				testutil.AssertErrorEnvelope(t, resp, tt.expectedStatus, tt.expectedMsg)
			}
		})
	}
}

func TestUserHandler_RefreshToken(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("rotation invalidates the previous refresh token", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, tokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		resp := testutil.PostJSON(t, http.DefaultClient, ts.APIURL("/users/refresh-token"), map[string]string{
			"refreshToken": tokens.RefreshToken,
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var rotated struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		}
		testutil.DecodeData(t, resp, &rotated)
		assert.NotEmpty(t, rotated.RefreshToken)
		assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

		// Replaying the pre-rotation token must fail.
		replay := testutil.PostJSON(t, http.DefaultClient, ts.APIURL("/users/refresh-token"), map[string]string{
			"refreshToken": tokens.RefreshToken,
		})
		defer replay.Body.Close()
		testutil.AssertErrorEnvelope(t, replay, http.StatusUnauthorized, "refresh token expired or used")

		// The rotated token still works.
		again := testutil.PostJSON(t, http.DefaultClient, ts.APIURL("/users/refresh-token"), map[string]string{
			"refreshToken": rotated.RefreshToken,
		})
		defer again.Body.Close()
		testutil.AssertStatusCode(t, again, http.StatusOK)
	})

	t.Run("missing token", func(t *testing.T) {
		ts.DB.Truncate(t)

		resp := testutil.PostJSON(t, http.DefaultClient, ts.APIURL("/users/refresh-token"), map[string]string{})
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusUnauthorized, "unauthorized request")
	})

	t.Run("garbage token", func(t *testing.T) {
		ts.DB.Truncate(t)

		resp := testutil.PostJSON(t, http.DefaultClient, ts.APIURL("/users/refresh-token"), map[string]string{
			"refreshToken": "not-a-jwt",
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("refresh after logout", func(t *testing.T) {
		ts.DB.Truncate(t)
		_, tokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		logout := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/users/logout"), tokens.AccessToken, nil)
		defer logout.Body.Close()
		testutil.AssertStatusCode(t, logout, http.StatusOK)

		resp := testutil.PostJSON(t, http.DefaultClient, ts.APIURL("/users/refresh-token"), map[string]string{
			"refreshToken": tokens.RefreshToken,
		})
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusUnauthorized, "refresh token expired or used")
	})
}

func TestUserHandler_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, tokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/users/logout"), tokens.AccessToken, nil)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	// The stored refresh token is cleared.
	var stored domain.User
	require.NoError(t, ts.DB.DB.First(&stored, "id = ?", user.ID).Error)
	assert.Nil(t, stored.RefreshToken)

	// Both auth cookies are expired.
	for _, c := range resp.Cookies() {
		assert.Equal(t, -1, c.MaxAge, "cookie %s should be expired", c.Name)
	}
}

func TestUserHandler_CurrentUser(t *testing.T) {
	ts := testutil.NewTestServer(t)
	user, tokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("with valid token", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/users/current-user"), tokens.AccessToken, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var me domain.User
		testutil.DecodeData(t, resp, &me)
		assert.Equal(t, user.ID, me.ID)
		assert.Equal(t, user.Username, me.Username)
	})

	t.Run("without token", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/users/current-user"), "", nil)
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusUnauthorized, "unauthorized request")
	})

	t.Run("with malformed token", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/users/current-user"), "bogus", nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

func TestUserHandler_ChangePassword(t *testing.T) {
	ts := testutil.NewTestServer(t)
	builder := testutil.NewUserBuilder().WithPassword("originalpass123")
	user, tokens := builder.BuildAndAuthenticate(t, ts)

	t.Run("wrong old password", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/users/change-password"), tokens.AccessToken, map[string]string{
			"oldPassword": "not-the-password",
			"newPassword": "newpassword123",
		})
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusBadRequest, "invalid old password")
	})

	t.Run("successful change", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/users/change-password"), tokens.AccessToken, map[string]string{
			"oldPassword": "originalpass123",
			"newPassword": "newpassword123",
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		// Old password no longer logs in, the new one does.
		failed := testutil.PostJSON(t, http.DefaultClient, ts.APIURL("/users/login"), map[string]string{
			"username": user.Username,
			"password": "originalpass123",
		})
		defer failed.Body.Close()
		testutil.AssertStatusCode(t, failed, http.StatusUnauthorized)

		ok := testutil.PostJSON(t, http.DefaultClient, ts.APIURL("/users/login"), map[string]string{
			"username": user.Username,
			"password": "newpassword123",
		})
		defer ok.Body.Close()
		testutil.AssertStatusCode(t, ok, http.StatusOK)
	})
}
