package api_test

import (
	"net/http"
	"strings"
	"testing"

	"reservation_system/internal/utils"
)

func TestRegisterHandler(t *testing.T) {
	_, r := setupTestServer(t)

	// First registration succeeds and strips the credential
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", map[string]string{
		"username":  "Alice",
		"password":  "secret123",
		"full_name": "Alice Example",
		"email":     "alice@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want %d (%s)", w.Code, http.StatusCreated, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "secret123") {
		t.Error("register response leaked the password")
	}
	var created struct {
		User struct {
			Username string `json:"username"`
			Name     string `json:"name"`
		} `json:"user"`
	}
	decodeBody(t, w, &created)
	if created.User.Username != "alice" {
		t.Errorf("stored username = %q, want lowercased %q", created.User.Username, "alice")
	}
	if created.User.Name != "Alice Example" {
		t.Errorf("stored name = %q, want %q", created.User.Name, "Alice Example")
	}

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
		wantField  string
	}{
		{
			name: "Duplicate username is a conflict naming the field",
			body: map[string]string{
				"username":  "alice",
				"password":  "secret123",
				"full_name": "Another Alice",
			},
			wantStatus: http.StatusConflict,
			wantField:  "username",
		},
		{
			name: "Duplicate email is a conflict naming the field",
			body: map[string]string{
				"username":  "alice2",
				"password":  "secret123",
				"full_name": "Another Alice",
				"email":     "alice@example.com",
			},
			wantStatus: http.StatusConflict,
			wantField:  "email",
		},
		{
			name: "Short username fails validation",
			body: map[string]string{
				"username":  "al",
				"password":  "secret123",
				"full_name": "Alice Example",
			},
			wantStatus: http.StatusBadRequest,
			wantField:  "username",
		},
		{
			name: "Short password fails validation",
			body: map[string]string{
				"username":  "bob",
				"password":  "12345",
				"full_name": "Bob Example",
			},
			wantStatus: http.StatusBadRequest,
			wantField:  "password",
		},
		{
			name: "Invalid email fails validation",
			body: map[string]string{
				"username":  "bob",
				"password":  "secret123",
				"full_name": "Bob Example",
				"email":     "not-an-email",
			},
			wantStatus: http.StatusBadRequest,
			wantField:  "email",
		},
		{
			name: "Missing required fields fail binding",
			body: map[string]string{
				"username": "bob",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/auth/register", "", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantField != "" {
				var resp struct {
					Field string `json:"field"`
				}
				decodeBody(t, w, &resp)
				if resp.Field != tt.wantField {
					t.Errorf("field = %q, want %q", resp.Field, tt.wantField)
				}
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	db, r := setupTestServer(t)
	createUser(t, db, "alice", "Alice Example", "user")

	tests := []struct {
		name       string
		username   string
		password   string
		wantStatus int
	}{
		{
			name:       "Valid credentials return a token",
			username:   "alice",
			password:   "password123",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Uppercase username still matches",
			username:   "Alice",
			password:   "password123",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Wrong password is unauthorized",
			username:   "alice",
			password:   "wrong",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Unknown user is unauthorized",
			username:   "nobody",
			password:   "password123",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
				"username": tt.username,
				"password": tt.password,
			})
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Token string `json:"token"`
				}
				decodeBody(t, w, &resp)
				claims, err := utils.ParseJWT(resp.Token, testSecret)
				if err != nil {
					t.Fatalf("returned token does not parse: %v", err)
				}
				if claims.Username != "alice" {
					t.Errorf("token username = %q, want %q", claims.Username, "alice")
				}
			}
		})
	}
}

func TestRefreshSessionReflectsPersistedState(t *testing.T) {
	db, r := setupTestServer(t)
	user, token := createUser(t, db, "alice", "Alice Example", "user")

	// Mutate the persisted display name behind the session's back
	if err := db.Model(&user).Update("name", "Alice Renamed").Error; err != nil {
		t.Fatalf("failed to update user: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/auth/refresh", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, want %d (%s)", w.Code, http.StatusOK, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	claims, err := utils.ParseJWT(resp.Token, testSecret)
	if err != nil {
		t.Fatalf("refreshed token does not parse: %v", err)
	}
	if claims.Name != "Alice Renamed" {
		t.Errorf("refreshed token name = %q, want %q", claims.Name, "Alice Renamed")
	}
}
