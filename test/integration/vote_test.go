package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitVote(t *testing.T, app *TestApp, payload map[string]any) (*http.Response, map[string]any) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := app.Client.Post(app.Server.URL+"/api/vote", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func fetchResults(t *testing.T, app *TestApp) map[string]int64 {
	t.Helper()

	resp, err := app.Client.Get(app.Server.URL + "/api/results")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	return results
}

func TestVoteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	// 1. Submit a vote
	resp, body := submitVote(t, app, map[string]any{
		"voterName":  "A",
		"voterEmail": "a@x.com",
		"vote":       "casting",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["voteId"])

	results := fetchResults(t, app)
	assert.Equal(t, int64(1), results["casting"])
	assert.Equal(t, int64(0), results["nota"])
	assert.Equal(t, int64(1), results["total"])

	// 2. Same participant again, different option -> rejected, results unchanged
	resp, body = submitVote(t, app, map[string]any{
		"voterName":  "A",
		"voterEmail": "a@x.com",
		"vote":       "nota",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	results = fetchResults(t, app)
	assert.Equal(t, int64(1), results["casting"])
	assert.Equal(t, int64(1), results["total"])

	// 3. Exactly one row persisted
	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInvalidOptionNotPersisted(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, body := submitVote(t, app, map[string]any{
		"voterName":  "B",
		"voterEmail": "b@x.com",
		"vote":       "invalid-option",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestConcurrentSubmissions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	const distinct = 20
	var wg sync.WaitGroup
	for i := 0; i < distinct; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, _ := submitVote(t, app, map[string]any{
				"voterName":  fmt.Sprintf("voter-%d", i),
				"voterEmail": fmt.Sprintf("voter-%d@example.com", i),
				"vote":       "casting",
			})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}(i)
	}
	wg.Wait()

	// 20 concurrent resubmissions of one participant: only the first wins
	successes := make(chan int, distinct)
	for i := 0; i < distinct; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, _ := submitVote(t, app, map[string]any{
				"voterName":  "dup",
				"voterEmail": "dup@example.com",
				"vote":       "nota",
			})
			successes <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(successes)

	ok, rejected := 0, 0
	for code := range successes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusBadRequest:
			rejected++
		default:
			t.Errorf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, distinct-1, rejected)

	results := fetchResults(t, app)
	assert.Equal(t, int64(distinct), results["casting"])
	assert.Equal(t, int64(1), results["nota"])
	assert.Equal(t, int64(distinct+1), results["total"])
}

func TestHealthReportsStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Get(app.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["storageConnected"])
}
