package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	authsvc "nearvisit-backend/internal/application/auth"
	"nearvisit-backend/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthenticator returns the configured result or error.
type fakeAuthenticator struct {
	res *authsvc.Result
	err error

	gotSignup authsvc.SignupInput
	gotLogin  authsvc.LoginInput
}

func (f *fakeAuthenticator) Signup(_ context.Context, in authsvc.SignupInput) (*authsvc.Result, error) {
	f.gotSignup = in
	return f.res, f.err
}

func (f *fakeAuthenticator) Login(_ context.Context, in authsvc.LoginInput) (*authsvc.Result, error) {
	f.gotLogin = in
	return f.res, f.err
}

func setupApp(fake *fakeAuthenticator) *fiber.App {
	h := &Handlers{Service: fake}
	app := fiber.New()
	app.Post("/signup", h.Signup)
	app.Post("/login", h.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func okResult() *authsvc.Result {
	return &authsvc.Result{
		Token: "signed.jwt.token",
		User:  &domain.User{ID: uuid.New(), Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"},
	}
}

func TestSignup_Created(t *testing.T) {
	fake := &fakeAuthenticator{res: okResult()}
	app := setupApp(fake)

	status, body := postJSON(t, app, "/signup", map[string]string{"name": "Ann", "email": "ann@x.com", "password": "pw"})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Account created successfully.", body["message"])
	assert.Equal(t, "signed.jwt.token", body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Ann", user["name"])
	assert.NotContains(t, user, "passwordHash")
	assert.Equal(t, "ann@x.com", fake.gotSignup.Email)
}

func TestSignup_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{authsvc.ErrMissingFields, fiber.StatusBadRequest},
		{authsvc.ErrInvalidEmail, fiber.StatusBadRequest},
		{authsvc.ErrEmailTaken, fiber.StatusConflict},
		{errors.New("db down"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := setupApp(&fakeAuthenticator{err: tc.err})
		status, body := postJSON(t, app, "/signup", map[string]string{"name": "Ann"})
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.NotEmpty(t, body["message"])
	}
}

func TestLogin_OK(t *testing.T) {
	fake := &fakeAuthenticator{res: okResult()}
	app := setupApp(fake)

	status, body := postJSON(t, app, "/login", map[string]string{"email": "ann@x.com", "password": "pw"})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Login successful!", body["message"])
	assert.Equal(t, "signed.jwt.token", body["token"])
	assert.Equal(t, "pw", fake.gotLogin.Password)
}

func TestLogin_ErrorMapping(t *testing.T) {
	app := setupApp(&fakeAuthenticator{err: authsvc.ErrInvalidCredentials})
	status, body := postJSON(t, app, "/login", map[string]string{"email": "ann@x.com", "password": "bad"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials.", body["message"])

	app = setupApp(&fakeAuthenticator{err: authsvc.ErrCredentialsRequired})
	status, _ = postJSON(t, app, "/login", map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestLogin_MalformedBody(t *testing.T) {
	app := setupApp(&fakeAuthenticator{res: okResult()})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
