package expo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foyerapp/foyer-backend/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(url string) *Client {
	return NewClient(config.ExpoConfig{URL: url, Timeout: 5 * time.Second}, testLogger())
}

func TestValidToken(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidToken("ExponentPushToken[abc123]"))
	assert.False(t, ValidToken("abc123"))
	assert.False(t, ValidToken("ExponentPushToken[abc123"))
	assert.False(t, ValidToken(""))
}

func TestSend(t *testing.T) {
	t.Parallel()

	var got []Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	err := c.Send(context.Background(),
		[]string{"ExponentPushToken[a]", "not-a-token", "ExponentPushToken[b]"},
		"Hello", "World", map[string]any{"type": "test"},
	)
	require.NoError(t, err)

	require.Len(t, got, 2, "invalid tokens are skipped")
	assert.Equal(t, "ExponentPushToken[a]", got[0].To)
	assert.Equal(t, "Hello", got[0].Title)
	assert.Equal(t, "World", got[0].Body)
	assert.Equal(t, "default", got[0].Sound)
}

func TestSend_BatchesAtAPILimit(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var batchSizes []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var batch []Message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		mu.Lock()
		batchSizes = append(batchSizes, len(batch))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tokens := make([]string, 150)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("ExponentPushToken[%d]", i)
	}

	c := newTestClient(srv.URL)

	err := c.Send(context.Background(), tokens, "T", "B", nil)
	require.NoError(t, err)

	assert.Equal(t, []int{100, 50}, batchSizes, "150 messages split into 100 + 50")
}

func TestSend_NoValidTokensIsNoop(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	err := c.Send(context.Background(), []string{"junk", ""}, "Hello", "World", nil)
	require.NoError(t, err)
}

func TestSend_RetriesOn5xx(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		body, _ := io.ReadAll(r.Body)
		assert.NotEmpty(t, body, "retry must resend the payload")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	err := c.Send(context.Background(), []string{"ExponentPushToken[a]"}, "T", "B", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSend_FailsAfterRetry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)

	err := c.Send(context.Background(), []string{"ExponentPushToken[a]"}, "T", "B", nil)
	require.Error(t, err)
}

func TestNopClient(t *testing.T) {
	t.Parallel()

	err := NopClient{}.Send(context.Background(), []string{"ExponentPushToken[a]"}, "T", "B", nil)
	require.NoError(t, err)
}
