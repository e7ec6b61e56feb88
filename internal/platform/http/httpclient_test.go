package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Timeout(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(ClientOptions{Timeout: 3 * time.Second})
	assert.Equal(t, 3*time.Second, c.Timeout)

	c = NewHTTPClient(ClientOptions{})
	assert.Zero(t, c.Timeout)
}

func TestNewHTTPClient_UserAgent(t *testing.T) {
	t.Parallel()

	got := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewHTTPClient(ClientOptions{UserAgent: "CompanyResearchAPI"})

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	res, err := c.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()

	req, err = http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom")
	res, err = c.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()

	assert.Equal(t, "CompanyResearchAPI", <-got)
	assert.Equal(t, "custom", <-got)
}
