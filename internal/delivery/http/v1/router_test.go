package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"meup-backend/config"
	"meup-backend/internal/cloudsync"
	v1 "meup-backend/internal/delivery/http/v1"
	"meup-backend/internal/events"
	"meup-backend/internal/kv"
	filerepo "meup-backend/internal/repository/file"
	"meup-backend/internal/store"
	"meup-backend/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:        "0",
		FrontendURL: "http://localhost:3000",
		JWTSecret:   "test-secret",
	}

	repo, err := filerepo.NewSnapshotRepository(t.TempDir(), "test")
	assert.NoError(t, err)
	bus := events.NewBus()
	st, err := store.New(repo, bus)
	assert.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.MinCost)
	assert.NoError(t, err)
	assert.NoError(t, store.Seed(st, store.SeedParams{
		AdminEmail:        "admin@meup.demo",
		AdminPasswordHash: string(hash),
		DemoPasswordHash:  string(hash),
	}))

	validate := validator.New()
	authUC := usecase.NewAuthUsecase(st, validate, cfg.JWTSecret)
	manager := cloudsync.NewManager(cloudsync.NewClient("http://127.0.0.1:1"), st, time.Hour, t.TempDir())

	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		JobUC:        usecase.NewJobUsecase(st),
		OfferUC:      usecase.NewOfferUsecase(st),
		AssignmentUC: usecase.NewAssignmentUsecase(st),
		ChatUC:       usecase.NewChatUsecase(st),
		RatingUC:     usecase.NewRatingUsecase(st, validate),
		AdminUC: usecase.NewAdminUsecase(st, authUC, func(context.Context) error {
			return nil
		}),
		Store:       st,
		SyncManager: manager,
		Slots:       kv.NewMemoryStore(),
		Bus:         bus,
		Config:      cfg,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, token string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	assert.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	return resp
}

func loginAs(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	resp := postJSON(t, srv.URL+"/v1/auth/login", "", map[string]string{
		"email": email, "password": "demo",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}

func TestRouter(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Should report health without auth", func(t *testing.T) {
		resp := getJSON(t, srv.URL+"/v1/health", "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Should reject bad credentials", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/v1/auth/login", "", map[string]string{
			"email": "c1@empresa.com", "password": "errada",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Should require a token on protected routes", func(t *testing.T) {
		resp := getJSON(t, srv.URL+"/v1/auth/me", "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Should serve the session owner on /auth/me", func(t *testing.T) {
		token := loginAs(t, srv, "c1@empresa.com")
		resp := getJSON(t, srv.URL+"/v1/auth/me", token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Should keep companies out of admin routes", func(t *testing.T) {
		token := loginAs(t, srv, "c1@empresa.com")
		resp := getJSON(t, srv.URL+"/v1/admin/stats", token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Should let the admin in", func(t *testing.T) {
		token := loginAs(t, srv, "admin@meup.demo")
		resp := getJSON(t, srv.URL+"/v1/admin/stats", token)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Should round trip a public kv slot", func(t *testing.T) {
		resp := getJSON(t, srv.URL+"/v1/kv/meup_sala", "")
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = postJSON(t, srv.URL+"/v1/kv/meup_sala", "", map[string]int{"v": 1})
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = getJSON(t, srv.URL+"/v1/kv/meup_sala", "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Should enforce company role on job creation", func(t *testing.T) {
		token := loginAs(t, srv, "p1@prof.com")
		resp := postJSON(t, srv.URL+"/v1/jobs", token, map[string]any{
			"title": "Caixa", "value_offered": 100, "duration_hours": 4,
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
