package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upitrack/internal/repositories"
	"upitrack/internal/routes"
)

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	app := fiber.New()
	routes.SetupRoutes(app, repositories.NewMemoryRepository(), nil)
	return app
}

func request(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	app := newApp(t)
	resp := request(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Server is healthy!", string(body))
}

func TestAuthFlow(t *testing.T) {
	app := newApp(t)

	resp := request(t, app, http.MethodPost, "/api/register", map[string]string{
		"username": "alice",
		"password": "s3cret-pw",
		"upiId":    "alice@bank",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decodeMap(t, resp)
	assert.Equal(t, "alice", registered["username"])
	assert.NotContains(t, registered, "password")

	t.Run("duplicate register is a 400", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/register", map[string]string{
			"username": "alice",
			"password": "s3cret-pw",
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing password fails validation", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/register", map[string]string{
			"username": "bob",
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("short credentials are accepted", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/register", map[string]string{
			"username": "jo",
			"password": "pw",
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = request(t, app, http.MethodPost, "/api/login", map[string]string{
			"username": "jo",
			"password": "pw",
		}, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	resp = request(t, app, http.MethodPost, "/api/login", map[string]string{
		"username": "alice",
		"password": "s3cret-pw",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loginBody := decodeMap(t, resp)
	token, _ := loginBody["token"].(string)
	require.NotEmpty(t, token)

	t.Run("bad credentials are a 401 either way", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/login", map[string]string{
			"username": "alice", "password": "wrong",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = request(t, app, http.MethodPost, "/api/login", map[string]string{
			"username": "nobody", "password": "s3cret-pw",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("current user via bearer token", func(t *testing.T) {
		resp := request(t, app, http.MethodGet, "/api/user", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		user := decodeMap(t, resp)
		assert.Equal(t, "alice", user["username"])
		assert.NotContains(t, user, "password")
	})

	t.Run("current user without credentials is a 401", func(t *testing.T) {
		resp := request(t, app, http.MethodGet, "/api/user", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("tampered token is a 401", func(t *testing.T) {
		resp := request(t, app, http.MethodGet, "/api/user", nil, token+"x")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestQrCodeEndpoints(t *testing.T) {
	app := newApp(t)

	resp := request(t, app, http.MethodPost, "/api/users", map[string]string{
		"username": "demo", "password": "password", "upiId": "demo@bank",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decodeMap(t, resp)
	userID := int(user["id"].(float64))

	resp = request(t, app, http.MethodPost, "/api/qr-codes", map[string]interface{}{
		"userId": userID,
		"upiId":  "demo@bank",
		"name":   "Shop QR",
		"amount": "100",
		"size":   "small",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	qrCode := decodeMap(t, resp)
	qrID := int(qrCode["id"].(float64))
	assert.Contains(t, qrCode["qrData"], "data:image/png;base64,")
	assert.Equal(t, "small", qrCode["size"])
	assert.Equal(t, "simple", qrCode["borderStyle"])

	t.Run("missing upiId fails validation", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/qr-codes", map[string]interface{}{
			"userId": userID, "name": "x",
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown owner is a 400", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/qr-codes", map[string]interface{}{
			"userId": 9999, "upiId": "x@y", "name": "x",
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("fetch and list", func(t *testing.T) {
		resp := request(t, app, http.MethodGet, "/api/qr-codes/1", nil, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp = request(t, app, http.MethodGet, "/api/users/1/qr-codes", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		list := decodeList(t, resp)
		assert.Len(t, list, 1)

		resp = request(t, app, http.MethodGet, "/api/qr-codes/999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete cascades to transactions", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/transactions", map[string]interface{}{
			"qrCodeId": qrID, "amount": "50", "payerUpiId": "x@bank",
		}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		tx := decodeMap(t, resp)
		txID := int(tx["id"].(float64))

		resp = request(t, app, http.MethodDelete, "/api/qr-codes/1", nil, "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = request(t, app, http.MethodDelete, "/api/qr-codes/1", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = request(t, app, http.MethodGet, "/api/transactions/"+itoa(txID), nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestTransactionAndStatsEndpoints(t *testing.T) {
	app := newApp(t)

	resp := request(t, app, http.MethodPost, "/api/users", map[string]string{
		"username": "demo", "password": "pw", "upiId": "demo@bank",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decodeMap(t, resp)
	userID := int(user["id"].(float64))

	resp = request(t, app, http.MethodPost, "/api/qr-codes", map[string]interface{}{
		"userId": userID, "upiId": "demo@bank", "name": "A",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	qrCode := decodeMap(t, resp)
	qrID := int(qrCode["id"].(float64))

	for _, tx := range []map[string]interface{}{
		{"qrCodeId": qrID, "amount": "1250", "payerUpiId": "x@bank"},
		{"qrCodeId": qrID, "amount": "500", "payerUpiId": "y@bank"},
	} {
		resp := request(t, app, http.MethodPost, "/api/transactions", tx, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created := decodeMap(t, resp)
		assert.Equal(t, "completed", created["status"])
		assert.NotEmpty(t, created["reference"])
	}

	t.Run("stats rollup", func(t *testing.T) {
		resp := request(t, app, http.MethodGet, "/api/users/"+itoa(userID)+"/stats", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		stats := decodeMap(t, resp)
		assert.Equal(t, "1750", stats["totalPayments"])
		assert.Equal(t, float64(1), stats["activeQrCodes"])
		assert.Equal(t, float64(2), stats["totalTransactions"])
		assert.Equal(t, float64(2), stats["uniquePayers"])
	})

	t.Run("listings are newest-first", func(t *testing.T) {
		resp := request(t, app, http.MethodGet, "/api/qr-codes/"+itoa(qrID)+"/transactions", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		byQr := decodeList(t, resp)
		require.Len(t, byQr, 2)
		assert.Equal(t, "500", byQr[0]["amount"])

		resp = request(t, app, http.MethodGet, "/api/users/"+itoa(userID)+"/transactions", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		byUser := decodeList(t, resp)
		require.Len(t, byUser, 2)
		assert.Equal(t, "500", byUser[0]["amount"])
	})

	t.Run("unknown ids are 404s", func(t *testing.T) {
		resp := request(t, app, http.MethodGet, "/api/transactions/999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = request(t, app, http.MethodGet, "/api/users/999/stats", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric ids are 404s", func(t *testing.T) {
		for _, path := range []string{
			"/api/users/abc",
			"/api/qr-codes/abc",
			"/api/transactions/abc",
			"/api/users/abc/stats",
		} {
			resp := request(t, app, http.MethodGet, path, nil, "")
			assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		}

		resp := request(t, app, http.MethodDelete, "/api/qr-codes/abc", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown QR code on create is a 400", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/transactions", map[string]interface{}{
			"qrCodeId": 9999, "amount": "5",
		}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDemoData(t *testing.T) {
	app := newApp(t)

	resp := request(t, app, http.MethodPost, "/api/demo-data", nil, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = request(t, app, http.MethodGet, "/api/users/1/stats", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeMap(t, resp)
	assert.Equal(t, "6400", stats["totalPayments"])
	assert.Equal(t, float64(3), stats["activeQrCodes"])
	assert.Equal(t, float64(5), stats["totalTransactions"])
	assert.Equal(t, float64(5), stats["uniquePayers"])

	t.Run("demo user can log in", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/login", map[string]string{
			"username": "demo", "password": "password",
		}, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("reseeding reuses the demo user", func(t *testing.T) {
		resp := request(t, app, http.MethodPost, "/api/demo-data", nil, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp = request(t, app, http.MethodGet, "/api/users/2", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
