package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"booking-system/airline/internal/api"
	"booking-system/airline/internal/config"
	"booking-system/airline/internal/constants"
	"booking-system/airline/internal/db/dbtest"
	"booking-system/airline/internal/events"
	"booking-system/airline/internal/metrics"
	"booking-system/airline/internal/middleware"
	"booking-system/airline/internal/models/dtos"
	gormModels "booking-system/airline/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	srv        *httptest.Server
	adminToken string
}

func newTestServer(t *testing.T, limiter func(*metrics.MetricsRegistry) *middleware.RateLimiter) *testServer {
	t.Helper()

	cfg := config.Default()
	cfg.Auth.JWTSecret = "router-test-secret"
	cfg.Auth.BcryptCost = bcrypt.MinCost

	store := dbtest.NewStore(t)
	reg := prometheus.NewRegistry()
	metricsReg := metrics.NewMetricsRegistry(reg)
	deps := api.InitDependencies(cfg, store, nil, &events.Recorder{}, metricsReg)

	admin := &gormModels.User{Username: "root", Email: "root@example.com", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, store.DB.Create(admin).Error)
	adminToken, err := deps.Tokens.Issue(admin.ID, true)
	require.NoError(t, err)

	var authLimiter *middleware.RateLimiter
	if limiter != nil {
		authLimiter = limiter(metricsReg)
	}

	srv := httptest.NewServer(RegisterRoutes(deps, reg, authLimiter, time.Now()))
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, adminToken: adminToken}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*http.Response, dtos.APIResponse) {
	t.Helper()

	req, err := http.NewRequest(method, s.srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(constants.HeaderAuthToken, token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope dtos.APIResponse
	_ = json.Unmarshal(raw, &envelope)
	return resp, envelope
}

func idOf(t *testing.T, env dtos.APIResponse, key string) int64 {
	t.Helper()
	data, ok := env.Data.(map[string]any)
	require.True(t, ok, "data is not an object")
	id, ok := data[key].(float64)
	require.True(t, ok, "missing %s", key)
	return int64(id)
}

func TestBookingJourney(t *testing.T) {
	s := newTestServer(t, nil)

	resp, _ := s.do(t, http.MethodPost, "/api/users/register", "",
		`{"username":"alice","email":"Alice@Example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	userToken := resp.Header.Get(constants.HeaderAuthToken)
	require.NotEmpty(t, userToken)

	resp, _ = s.do(t, http.MethodPost, "/api/users/login", "",
		`{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(constants.HeaderAuthToken))

	resp, _ = s.do(t, http.MethodGet, "/api/users/validate-token", userToken, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/aircraft", userToken, `{"name":"A320","total_seats":3}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := s.do(t, http.MethodPost, "/api/aircraft", s.adminToken, `{"name":"A320","total_seats":3}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	aircraftID := idOf(t, env, "aircraft_id")

	flightBody := fmt.Sprintf(`{"flight_number":"AB123","departure_airport":"LHR","destination_airport":"JFK",
		"departure_time":"2025-03-14T10:00:00Z","arrival_time":"2025-03-14T18:00:00Z","aircraft_id":%d,"price":120}`, aircraftID)
	resp, env = s.do(t, http.MethodPost, "/api/flights", s.adminToken, flightBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	flightID := idOf(t, env, "flight_id")

	resp, _ = s.do(t, http.MethodPost, "/api/flights", s.adminToken, flightBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, env = s.do(t, http.MethodGet, "/api/flights/by-date/2025-03-14", userToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.Data, 1)

	resp, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/seats/%d/2025-03-14", flightID), userToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	seats, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, seats, 3)
	seatID := int64(seats[0].(map[string]any)["seat_id"].(float64))

	bookingBody := fmt.Sprintf(`{"flight_id":%d,"seat_id":%d}`, flightID, seatID)
	resp, env = s.do(t, http.MethodPost, "/api/bookings", userToken, bookingBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	bookingID := idOf(t, env, "booking_id")

	resp, env = s.do(t, http.MethodPost, "/api/bookings", userToken, bookingBody)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, constants.MsgSeatAlreadyBooked, env.Message)

	resp, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/bookings/%d", bookingID), userToken, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/flights/%d", flightID), s.adminToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/flights/%d", flightID), userToken, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/flights/undelete/%d", flightID), s.adminToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/flights/%d", flightID), userToken, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/api/flights/1", "/api/seats/1", "/api/bookings/1", "/api/aircraft", "/api/users/validate-token"} {
		resp, env := s.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, constants.MsgMissingToken, env.Message, path)
	}

	resp, _ := s.do(t, http.MethodGet, "/api/flights/1", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthEndpointsAreRateLimited(t *testing.T) {
	s := newTestServer(t, func(reg *metrics.MetricsRegistry) *middleware.RateLimiter {
		return middleware.NewRateLimiter(0.001, 2, reg)
	})

	body := `{"email":"nobody@example.com","password":"whatever"}`
	for i := 0; i < 2; i++ {
		resp, _ := s.do(t, http.MethodPost, "/api/users/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, _ := s.do(t, http.MethodPost, "/api/users/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	resp, err := http.Get(s.srv.URL + "/healthCheck")
	require.NoError(t, err)
	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health["status"])

	resp, err = http.Get(s.srv.URL + "/metrics")
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "airline_http_requests_total")
}
