package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesbago101/promo-back/internal/model"
)

func TestVerifyAccessSuccess(t *testing.T) {
	env := testSetup(t)
	env.createTestUser(t, "admin", "admin123", model.RoleAdmin)

	rec := env.do(t, http.MethodPost, "/auth/verify-access",
		`{"username":"admin","password":"admin123"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool        `json:"success"`
		Token   string      `json:"token"`
		User    userPayload `json:"user"`
	}
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Username)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	// The returned token must pass verification.
	claims, err := env.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestVerifyAccessMissingFields(t *testing.T) {
	env := testSetup(t)

	for _, body := range []string{
		`{"username":"admin"}`,
		`{"password":"secret"}`,
		`{}`,
	} {
		rec := env.do(t, http.MethodPost, "/auth/verify-access", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.JSONEq(t, `{"error":"Username and password are required"}`, rec.Body.String())
	}
}

func TestVerifyAccessInvalidCredentials(t *testing.T) {
	env := testSetup(t)
	env.createTestUser(t, "admin", "admin123", model.RoleAdmin)

	// Unknown user and wrong password return the same message.
	for _, body := range []string{
		`{"username":"nobody","password":"admin123"}`,
		`{"username":"admin","password":"wrong"}`,
	} {
		rec := env.do(t, http.MethodPost, "/auth/verify-access", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "body %s", body)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
	}
}

func TestAuthCheckValid(t *testing.T) {
	env := testSetup(t)
	_, token := env.createTestUser(t, "editor", "pw12345", model.RoleEditor)

	rec := env.do(t, http.MethodGet, "/auth/check", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Valid bool        `json:"valid"`
		User  userPayload `json:"user"`
	}
	decodeBody(t, rec, &resp)
	assert.True(t, resp.Valid)
	assert.Equal(t, "editor", resp.User.Username)
	assert.Equal(t, model.RoleEditor, resp.User.Role)
}

func TestAuthCheckReportsCurrentRole(t *testing.T) {
	env := testSetup(t)
	user, token := env.createTestUser(t, "promoted", "pw12345", model.RoleEditor)

	// Promote after the token was issued; check must report the new role.
	err := env.queries.UpdateUserRole(context.Background(), user.ID, model.RoleAdmin, time.Now().UTC())
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/auth/check", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Valid bool        `json:"valid"`
		User  userPayload `json:"user"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)
}

func TestAuthCheckInvalid(t *testing.T) {
	env := testSetup(t)

	rec := env.do(t, http.MethodGet, "/auth/check", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"valid":false}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/auth/check", "", "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"valid":false}`, rec.Body.String())
}

func TestAuthCheckDatabaseFailure(t *testing.T) {
	env := testSetup(t)
	_, token := env.createTestUser(t, "editor", "pw12345", model.RoleEditor)

	// A broken database connection is a server fault, not a bad token.
	require.NoError(t, env.db.Close())

	rec := env.do(t, http.MethodGet, "/auth/check", "", token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestAuthCheckDeletedUser(t *testing.T) {
	env := testSetup(t)
	user, token := env.createTestUser(t, "ghost", "pw12345", model.RoleEditor)

	require.NoError(t, env.queries.DeleteUser(context.Background(), user.ID))

	rec := env.do(t, http.MethodGet, "/auth/check", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"valid":false}`, rec.Body.String())
}
