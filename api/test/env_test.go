package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
	"github.com/milsabores/pasteleria/api"
	"github.com/milsabores/pasteleria/api/background"
	"github.com/milsabores/pasteleria/config"
	"github.com/milsabores/pasteleria/core/user"
	"github.com/milsabores/pasteleria/database"
	"github.com/milsabores/pasteleria/rate"
	"github.com/milsabores/pasteleria/validate"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// TestEnv runs the whole API against a disposable postgres container.
// Each env gets its own container and cookie-jar client, so tests in
// different envs never share sessions or data.
type TestEnv struct {
	DB     *sqlx.DB
	Server *httptest.Server
	URL    string

	AdminEmail string
	AdminPass  string
	UserEmail  string
	UserPass   string

	client *http.Client
}

func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("connecting to docker: %w", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}

	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=" + name,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}
	res.Expire(300)

	t.Cleanup(func() {
		if err := pool.Purge(res); err != nil {
			t.Logf("purging postgres container: %v", err)
		}
	})

	dbCfg := config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       res.GetHostPort("5432/tcp"),
		Name:       name,
		DisableTLS: true,
	}

	var db *sqlx.DB
	pool.MaxWait = 30 * time.Second
	if err := pool.Retry(func() error {
		db, err = database.Open(dbCfg)
		if err != nil {
			return err
		}
		return db.Ping()
	}); err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	session := scs.New()
	session.Lifetime = time.Hour

	mux := api.APIMux(api.APIConfig{
		Log:             logger,
		DB:              db,
		Session:         session,
		Background:      background.New(logger),
		Limiter:         rate.NewLimiter(1000, 1, 1000),
		CheckoutTimeout: 5 * time.Second,
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	env := &TestEnv{
		DB:         db,
		Server:     server,
		URL:        server.URL,
		AdminEmail: "admin@pasteleria.cl",
		AdminPass:  "admin123",
		UserEmail:  "cliente@pasteleria.cl",
		UserPass:   "cliente123",
		client:     &http.Client{Jar: jar},
	}

	if err := env.seedUser(env.AdminEmail, env.AdminPass, "11111111-1", "ADMIN"); err != nil {
		return nil, err
	}
	if err := env.seedUser(env.UserEmail, env.UserPass, "20961605-k", "CLIENTE"); err != nil {
		return nil, err
	}

	return env, nil
}

func (e *TestEnv) Client() *http.Client {
	return e.client
}

func (e *TestEnv) seedUser(email, pass, rut, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	usr := user.User{
		ID:        validate.GenerateID(),
		RUT:       rut,
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Create(context.Background(), e.DB, usr); err != nil {
		return fmt.Errorf("seeding user %s: %w", email, err)
	}
	return nil
}

func (e *TestEnv) Login(t *testing.T, email, pass string) {
	t.Helper()

	body := map[string]string{"correo": email, "password": pass}
	w := e.do(t, http.MethodPost, "/auth/login", body)
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK {
		t.Fatalf("login as %s: status code %s", email, w.Status)
	}
}

func (e *TestEnv) Logout(t *testing.T) {
	t.Helper()

	w := e.do(t, http.MethodPost, "/auth/logout", nil)
	defer w.Body.Close()

	if w.StatusCode != http.StatusOK && w.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: status code %s", w.Status)
	}
}

// do performs a request through the env's cookie-jar client, encoding
// body as JSON when it is non-nil.
func (e *TestEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		buf = bytes.NewReader(raw)
	}

	r, err := http.NewRequest(method, e.URL+path, buf)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := e.client.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

// decode reads a JSON response body into v and closes it.
func decode(t *testing.T, w *http.Response, v any) {
	t.Helper()
	defer w.Body.Close()

	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}
