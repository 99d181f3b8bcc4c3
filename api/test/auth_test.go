package test

import (
	"net/http"
	"testing"

	"github.com/milsabores/pasteleria/core/user"
)

func TestSignupLogin(t *testing.T) {
	env, err := NewTestEnv(t, "auth_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	// A RUT distinct from the ones NewTestEnv seeds; users.rut is
	// unique, so reusing a seeded RUT would conflict.
	signup := map[string]string{
		"rut":      "12345678-5",
		"nombre":   "Valentina",
		"apellido": "Rojas",
		"correo":   "valentina@example.cl",
		"password": "secreto1",
		"region":   "Metropolitana",
		"comuna":   "Providencia",
	}

	w := env.do(t, http.MethodPost, "/auth/signup", signup)
	if w.StatusCode != http.StatusCreated {
		w.Body.Close()
		t.Fatalf("signup: status code %s", w.Status)
	}

	var usr user.User
	decode(t, w, &usr)
	if usr.Role != "CLIENTE" {
		t.Fatalf("new user role = %s, want CLIENTE", usr.Role)
	}

	// The same rut and email cannot register twice.
	w = env.do(t, http.MethodPost, "/auth/signup", signup)
	w.Body.Close()
	if w.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate signup: status code %s, want 409", w.Status)
	}

	env.Logout(t)

	w = env.do(t, http.MethodPost, "/auth/login", map[string]string{
		"correo":   "valentina@example.cl",
		"password": "equivocada",
	})
	w.Body.Close()
	if w.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: status code %s, want 401", w.Status)
	}

	env.Login(t, "valentina@example.cl", "secreto1")

	w = env.do(t, http.MethodGet, "/users/current", nil)
	if w.StatusCode != http.StatusOK {
		w.Body.Close()
		t.Fatalf("fetching current user: status code %s", w.Status)
	}

	var current user.User
	decode(t, w, &current)
	if current.ID != usr.ID {
		t.Fatalf("current user = %s, want %s", current.ID, usr.ID)
	}
}

func TestSignupRejectsBadRUT(t *testing.T) {
	env, err := NewTestEnv(t, "auth_rut_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	w := env.do(t, http.MethodPost, "/auth/signup", map[string]string{
		"rut":      "21503678-5",
		"nombre":   "Pedro",
		"apellido": "Soto",
		"correo":   "pedro@example.cl",
		"password": "secreto1",
	})
	defer w.Body.Close()

	if w.StatusCode != http.StatusBadRequest {
		t.Fatalf("signup with bad check digit: status code %s, want 400", w.Status)
	}
}
