//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFoyerFlow_CreateAndJoin(t *testing.T) {
	t.Parallel()
	ts := setupTestServer(t)

	owner := registerAccount(t, ts, "owner")
	foyerID, code := createFoyer(t, ts, owner, "Maison Bleue")

	// The creator is a member and already has rule acceptance,
	// so foyer-scoped routes work right away.
	status, body := ts.doJSON(t, http.MethodGet, "/api/leaderboard", nil, owner.AccessToken)
	require.Equal(t, http.StatusOK, status, "owner leaderboard: %v", body)

	// A second user joins by code, accepting the rule.
	guest := registerAccount(t, ts, "guest")

	status, _ = ts.doJSON(t, http.MethodGet, "/api/leaderboard", nil, guest.AccessToken)
	require.Equal(t, http.StatusForbidden, status, "no membership yet")

	status, body = ts.doJSON(t, http.MethodPost, "/api/foyer/join", map[string]any{
		"code":       code,
		"acceptRule": true,
	}, guest.AccessToken)
	require.Equal(t, http.StatusOK, status, "join: %v", body)
	joined := body["foyer"].(map[string]any)
	require.Equal(t, foyerID, joined["id"])

	// Both members now appear on the leaderboard.
	status, body = ts.doJSON(t, http.MethodGet, "/api/leaderboard", nil, guest.AccessToken)
	require.Equal(t, http.StatusOK, status, "guest leaderboard: %v", body)
	entries := body["leaderboard"].([]any)
	require.Len(t, entries, 2)

	// Joining the same foyer twice is rejected.
	status, _ = ts.doJSON(t, http.MethodPost, "/api/foyer/join", map[string]any{
		"code":       code,
		"acceptRule": true,
	}, guest.AccessToken)
	require.Equal(t, http.StatusConflict, status)
}

func TestFoyerFlow_MobileAppPaths(t *testing.T) {
	t.Parallel()
	ts := setupTestServer(t)

	acc := registerAccount(t, ts, "legacy-client")

	// The paths the shipped mobile app calls must keep answering.
	status, body := ts.doJSON(t, http.MethodPost, "/api/foyer/create", map[string]any{
		"name": "Maison Legacy",
		"rule": "no shoes inside",
	}, acc.AccessToken)
	require.Equal(t, http.StatusCreated, status, "create via legacy path: %v", body)
	created := body["foyer"].(map[string]any)

	status, body = ts.doJSON(t, http.MethodGet, "/api/foyer/user-foyers", nil, acc.AccessToken)
	require.Equal(t, http.StatusOK, status, "list via legacy path: %v", body)
	foyers := body["foyers"].([]any)
	require.Len(t, foyers, 1)
	require.Equal(t, created["id"], foyers[0].(map[string]any)["id"])
}

func TestFoyerFlow_JoinRequiresRuleAcceptance(t *testing.T) {
	t.Parallel()
	ts := setupTestServer(t)

	owner := registerAccount(t, ts, "strict-owner")
	_, code := createFoyer(t, ts, owner, "Maison Stricte")

	guest := registerAccount(t, ts, "hesitant")
	status, body := ts.doJSON(t, http.MethodPost, "/api/foyer/join", map[string]any{
		"code":       code,
		"acceptRule": false,
	}, guest.AccessToken)
	require.Equal(t, http.StatusBadRequest, status, "join without acceptance: %v", body)
}

func TestFoyerFlow_JoinUnknownCode(t *testing.T) {
	t.Parallel()
	ts := setupTestServer(t)

	guest := registerAccount(t, ts, "lost")
	status, _ := ts.doJSON(t, http.MethodPost, "/api/foyer/join", map[string]any{
		"code":       "ZZZZ9999",
		"acceptRule": true,
	}, guest.AccessToken)
	require.Equal(t, http.StatusNotFound, status)
}

func TestFoyerFlow_TenantIsolation(t *testing.T) {
	t.Parallel()
	ts := setupTestServer(t)

	alice := registerAccount(t, ts, "isolated-alice")
	createFoyer(t, ts, alice, "Foyer A")

	bob := registerAccount(t, ts, "isolated-bob")
	createFoyer(t, ts, bob, "Foyer B")

	// Alice creates a task in her foyer.
	status, body := ts.doJSON(t, http.MethodPost, "/api/tasks", map[string]any{
		"title":  "Water the plants",
		"points": 5,
	}, alice.AccessToken)
	require.Equal(t, http.StatusCreated, status, "create task: %v", body)
	task := body["task"].(map[string]any)
	taskID := task["id"].(string)

	// Bob cannot see or touch it from his foyer.
	status, body = ts.doJSON(t, http.MethodGet, "/api/tasks", nil, bob.AccessToken)
	require.Equal(t, http.StatusOK, status)
	require.Empty(t, body["tasks"].([]any))

	status, _ = ts.doJSON(t, http.MethodGet, "/api/tasks/"+taskID, nil, bob.AccessToken)
	require.Equal(t, http.StatusNotFound, status, "cross-tenant read must 404")

	status, _ = ts.doJSON(t, http.MethodDelete, "/api/tasks/"+taskID, nil, bob.AccessToken)
	require.Equal(t, http.StatusNotFound, status, "cross-tenant delete must 404")
}
