package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buddyup-app/go-buddyup/internal/stats"
	"github.com/buddyup-app/go-buddyup/internal/testutil"
	"github.com/buddyup-app/go-buddyup/internal/types"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ms := &stats.MockStatsProvider{}
	ms.On("Incr", mock.Anything).Maybe()

	return NewClient(srv.URL, srv.Client(), "device-1", ms, testutil.TestLogger(t))
}

func writeEnvelope(w http.ResponseWriter, statusCode int, env any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(env)
}

func TestLogin(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "device-1", r.Header.Get("X-Device-Id"), "expected device id header")

		var req LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email, "expected email to be forwarded")

		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"token": "tok1",
				"user":  types.User{Id: "u1", Name: "Ada"},
			},
		})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)

	resp, err := client.Login(context.Background(), "a@b.com", "password")
	assert.NoError(t, err, "expected login to succeed")
	assert.Equal(t, "tok1", resp.Token, "expected flattened token")
	assert.Equal(t, "u1", resp.User.Id, "expected flattened user")
}

func TestLoginBackendFailure(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "invalid credentials",
		})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)

	_, err := client.Login(context.Background(), "a@b.com", "wrongpass")
	assert.Error(t, err, "expected login to fail")

	apiErr, ok := err.(*Error)
	assert.True(t, ok, "expected an *Error")
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid credentials", apiErr.Message, "expected backend message verbatim")
	assert.False(t, IsNetworkError(err), "backend failures are not network errors")
}

func TestRegisterValidationErrorsFlattened(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "validation failed",
			"errors": []FieldError{
				{Field: "email", Message: "already taken"},
				{Field: "password", Message: "too short"},
			},
		})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)

	_, err := client.Register(context.Background(), RegisterParams{
		Name:     "Ada",
		Email:    "a@b.com",
		Password: "password1",
	})
	assert.Error(t, err, "expected register to fail")
	assert.Contains(t, err.Error(), "email: already taken", "expected flattened field error")
	assert.Contains(t, err.Error(), "password: too short", "expected flattened field error")
}

func TestRegisterLocalValidation(t *testing.T) {
	var calls int
	router := mux.NewRouter()
	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	client := newTestClient(t, router)

	tcases := []struct {
		name   string
		params RegisterParams
	}{
		{
			name:   "invalid email",
			params: RegisterParams{Name: "Ada", Email: "not-an-email", Password: "password1"},
		},
		{
			name:   "short password",
			params: RegisterParams{Name: "Ada", Email: "a@b.com", Password: "short"},
		},
		{
			name:   "missing name",
			params: RegisterParams{Email: "a@b.com", Password: "password1"},
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := client.Register(context.Background(), tc.params)
			assert.Error(t, err, "expected local validation to fail")

			apiErr, ok := err.(*Error)
			assert.True(t, ok, "expected an *Error")
			assert.Equal(t, "validation failed", apiErr.Message)
			assert.NotEmpty(t, apiErr.Fields, "expected field errors")
		})
	}

	assert.Zero(t, calls, "expected no request to reach the server")
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	ms := &stats.MockStatsProvider{}
	ms.On("Incr", mock.Anything).Maybe()
	client := NewClient(srv.URL, srv.Client(), "device-1", ms, testutil.TestLogger(t))
	srv.Close()

	_, err := client.ListActivities(context.Background())
	assert.Error(t, err, "expected error against closed server")
	assert.True(t, IsNetworkError(err), "expected a network error")

	apiErr, ok := err.(*Error)
	assert.True(t, ok, "expected an *Error")
	assert.Equal(t, "Network error", apiErr.Message, "expected normalized message")
}

func TestBearerTokenHeader(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/activities", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok9", r.Header.Get("Authorization"), "expected bearer header")
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    []types.Activity{{Id: "act1", Title: "Bouldering", Status: types.ActivityUpcoming}},
		})
	}).Methods(http.MethodGet)

	client := newTestClient(t, router)
	client.SetToken("tok9")

	activities, err := client.ListActivities(context.Background())
	assert.NoError(t, err)
	assert.Len(t, activities, 1)
	assert.Equal(t, "act1", activities[0].Id)

	client.ClearToken()

	router.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"), "expected no bearer header after clear")
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true})
	}).Methods(http.MethodGet)

	_, err = client.ListChats(context.Background())
	assert.NoError(t, err)
}

func TestListActivitiesNeverNil(t *testing.T) {
	tcases := []struct {
		name string
		body map[string]any
	}{
		{
			name: "null data",
			body: map[string]any{"success": true, "data": nil},
		},
		{
			name: "empty array",
			body: map[string]any{"success": true, "data": []types.Activity{}},
		},
		{
			name: "no data key",
			body: map[string]any{"success": true},
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/api/activities", func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, http.StatusOK, tc.body)
			}).Methods(http.MethodGet)

			client := newTestClient(t, router)

			activities, err := client.ListActivities(context.Background())
			assert.NoError(t, err)
			assert.NotNil(t, activities, "collections are empty arrays, never nil")
			assert.Empty(t, activities)
		})
	}
}

func TestRespondJoinRequest(t *testing.T) {
	tcases := []struct {
		name   string
		accept bool
		action string
	}{
		{name: "accept", accept: true, action: "accept"},
		{name: "reject", accept: false, action: "reject"},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/api/activities/requests/{id}/{action}", func(w http.ResponseWriter, r *http.Request) {
				vars := mux.Vars(r)
				assert.Equal(t, "req1", vars["id"])
				assert.Equal(t, tc.action, vars["action"])
				writeEnvelope(w, http.StatusOK, map[string]any{"success": true})
			}).Methods(http.MethodPost)

			client := newTestClient(t, router)

			err := client.RespondJoinRequest(context.Background(), "req1", tc.accept)
			assert.NoError(t, err)
		})
	}
}

func TestGetMessagesPagination(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/chat/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "chat1", mux.Vars(r)["id"])
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		writeEnvelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data": []types.Message{
				{Id: "m1", ChatId: "chat1", Content: "hello", Type: types.MessageText},
			},
		})
	}).Methods(http.MethodGet)

	client := newTestClient(t, router)

	messages, err := client.GetMessages(context.Background(), "chat1", 2, 50)
	assert.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Content)
}

func TestMarkNotificationRead(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/notifications/{id}/read", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "n1", mux.Vars(r)["id"])
		writeEnvelope(w, http.StatusOK, map[string]any{"success": true})
	}).Methods(http.MethodPut)

	client := newTestClient(t, router)
	assert.NoError(t, client.MarkNotificationRead(context.Background(), "n1"))
}

func TestBackendErrorWithoutMessage(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/api/subscription/tiers", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, map[string]any{"success": false})
	}).Methods(http.MethodGet)

	client := newTestClient(t, router)

	_, err := client.ListTiers(context.Background())
	assert.Error(t, err)

	apiErr, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, "internal server error", apiErr.Message, "expected status text fallback")
}
