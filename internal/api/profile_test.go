package api_test

import (
	"net/http"
	"testing"

	"reservation_system/internal/domain"
	"reservation_system/internal/utils"
)

func TestUpdateProfileName(t *testing.T) {
	db, r := setupTestServer(t)
	user, token := createUser(t, db, "alice", "Alice Example", "user")

	w := doJSON(t, r, http.MethodPatch, "/profile", token, map[string]string{
		"name": "Alice Renamed",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (%s)", w.Code, http.StatusOK, w.Body.String())
	}

	// The name is persisted
	var fromDB domain.User
	if err := db.First(&fromDB, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if fromDB.Name != "Alice Renamed" {
		t.Errorf("persisted name = %q, want %q", fromDB.Name, "Alice Renamed")
	}

	// And the response carries a refreshed token with the new name
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	claims, err := utils.ParseJWT(resp.Token, testSecret)
	if err != nil {
		t.Fatalf("refreshed token does not parse: %v", err)
	}
	if claims.Name != "Alice Renamed" {
		t.Errorf("token name = %q, want %q", claims.Name, "Alice Renamed")
	}
}

func TestUpdateProfileNameValidation(t *testing.T) {
	db, r := setupTestServer(t)
	_, token := createUser(t, db, "alice", "Alice Example", "user")

	tests := []struct {
		name  string
		value string
	}{
		{name: "Too short", value: "Al"},
		{name: "Too long", value: string(make([]byte, 101))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPatch, "/profile", token, map[string]string{"name": tt.value})
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d (%s)", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestUpdateProfilePassword(t *testing.T) {
	db, r := setupTestServer(t)
	createUser(t, db, "alice", "Alice Example", "user")

	// Log in to obtain a session the regular way
	w := doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want %d", w.Code, http.StatusOK)
	}
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &login)

	// Wrong old password is unauthorized
	w = doJSON(t, r, http.MethodPatch, "/profile", login.Token, map[string]string{
		"oldPassword": "wrong",
		"newPassword": "newsecret",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong old password status = %d, want %d (%s)", w.Code, http.StatusUnauthorized, w.Body.String())
	}

	// Too-short new password fails validation
	w = doJSON(t, r, http.MethodPatch, "/profile", login.Token, map[string]string{
		"oldPassword": "password123",
		"newPassword": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("short new password status = %d, want %d (%s)", w.Code, http.StatusBadRequest, w.Body.String())
	}

	// Correct old password changes the credential
	w = doJSON(t, r, http.MethodPatch, "/profile", login.Token, map[string]string{
		"oldPassword": "password123",
		"newPassword": "newsecret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("password change status = %d, want %d (%s)", w.Code, http.StatusOK, w.Body.String())
	}

	// Old password no longer logs in, the new one does
	w = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice",
		"password": "password123",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("old password login status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	w = doJSON(t, r, http.MethodPost, "/auth/login", "", map[string]string{
		"username": "alice",
		"password": "newsecret",
	})
	if w.Code != http.StatusOK {
		t.Errorf("new password login status = %d, want %d (%s)", w.Code, http.StatusOK, w.Body.String())
	}
}

func TestUpdateProfileRejectsUnknownShape(t *testing.T) {
	db, r := setupTestServer(t)
	_, token := createUser(t, db, "alice", "Alice Example", "user")

	w := doJSON(t, r, http.MethodPatch, "/profile", token, map[string]string{
		"nickname": "ally",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (%s)", w.Code, http.StatusBadRequest, w.Body.String())
	}
}
