package aiservice_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saverfox/saverfox/internal/infra/gateway/aiservice"
	"github.com/saverfox/saverfox/internal/shared/apperr"
	"github.com/saverfox/saverfox/pkg/logger"
)

func testClient(baseURL string) *aiservice.Client {
	return testClientWithRetries(baseURL, 2)
}

func testClientWithRetries(baseURL string, maxRetries int) *aiservice.Client {
	return aiservice.NewClient(aiservice.Config{
		BaseURL:    baseURL,
		Timeout:    time.Second,
		MaxRetries: maxRetries,
		RetryDelay: time.Millisecond,
	}, logger.New("test", io.Discard))
}

func generateBody() []byte {
	b, _ := json.Marshal(aiservice.GenerateResponse{
		Scenario:    "You found 5000 rupiah on the ground! What do you do?",
		Choices:     []string{"Save it", "Spend it on candy"},
		OpikTraceID: "trace_abc",
	})
	return b
}

func TestClient_GenerateAdventure(t *testing.T) {
	var gotReq aiservice.GenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/adventure/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(generateBody())
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).GenerateAdventure(context.Background(), &aiservice.GenerateRequest{
		UserAge:     10,
		Allowance:   50,
		GoalContext: "Saving for a new bicycle",
	})

	require.NoError(t, err)
	assert.Equal(t, 10, gotReq.UserAge)
	assert.Equal(t, "Saving for a new bicycle", gotReq.GoalContext)
	assert.Len(t, resp.Choices, 2)
	assert.Equal(t, "trace_abc", resp.OpikTraceID)
}

func TestClient_GenerateAdventure_RejectsSingleChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(aiservice.GenerateResponse{
			Scenario: "s", Choices: []string{"only one"}, OpikTraceID: "t",
		})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GenerateAdventure(context.Background(), &aiservice.GenerateRequest{UserAge: 10, Allowance: 50})
	assert.Error(t, err)
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(generateBody())
	}))
	defer srv.Close()

	// Two 5xx then a 200 succeeds on the last allowed attempt
	resp, err := testClientWithRetries(srv.URL, 3).GenerateAdventure(context.Background(), &aiservice.GenerateRequest{UserAge: 10, Allowance: 50})

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.NotEmpty(t, resp.Scenario)
}

func TestClient_MaxRetriesBoundsTotalAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClientWithRetries(srv.URL, 3).GenerateAdventure(context.Background(), &aiservice.GenerateRequest{UserAge: 10, Allowance: 50})

	require.Error(t, err)
	assert.Equal(t, apperr.KindServiceUnavailable, apperr.KindOf(err))
	assert.Equal(t, int32(3), calls.Load(), "a third 5xx must not earn a fourth attempt")
}

func TestClient_ExhaustionIsServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).EvaluateChoice(context.Background(), &aiservice.EvaluateRequest{
		Scenario: "s", ChoiceIndex: 0, ChoiceText: "Save it", UserAge: 10,
	})

	require.Error(t, err)
	assert.Equal(t, apperr.KindServiceUnavailable, apperr.KindOf(err))
}

func TestClient_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GenerateAdventure(context.Background(), &aiservice.GenerateRequest{UserAge: 99, Allowance: 50})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.NotEqual(t, apperr.KindServiceUnavailable, apperr.KindOf(err))
}

func TestClient_EvaluateChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/adventure/evaluate", r.URL.Path)
		json.NewEncoder(w).Encode(aiservice.EvaluateResponse{
			Feedback: "Pilihan yang bagus!",
			Scores: map[string]float64{
				"age_appropriateness": 0.9,
				"goal_alignment":      0.95,
				"financial_reasoning": 0.85,
				"creativity":          0.7,
			},
			OpikTraceID: "trace_def",
		})
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).EvaluateChoice(context.Background(), &aiservice.EvaluateRequest{
		Scenario:    "You found 5000 rupiah",
		ChoiceIndex: 0,
		ChoiceText:  "Save it",
		UserAge:     10,
	})

	require.NoError(t, err)
	assert.Equal(t, "Pilihan yang bagus!", resp.Feedback)
	assert.InDelta(t, 0.95, resp.Scores["goal_alignment"], 0.0001)
	assert.InDelta(t, 0.7, resp.Scores["creativity"], 0.0001, "unknown metrics survive decoding")
}
