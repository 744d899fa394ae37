package collect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitSuccess(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"site configuration saved","id":123}`))
	}))
	defer srv.Close()

	doc := Collect(Snapshot{KeyUserProfile: `{"websiteName":"Acme"}`})
	result := Submit(context.Background(), srv.URL+"/api/site-config", doc, nil)

	require.True(t, result.Success)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Acme", gotBody["profile"].(map[string]any)["websiteName"])

	data := result.Data.(map[string]any)
	assert.Equal(t, float64(123), data["id"])
}

func TestSubmitNon2xxIsGenericFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"site configuration failed validation"}`))
	}))
	defer srv.Close()

	result := Submit(context.Background(), srv.URL, Collect(Snapshot{}), nil)

	assert.False(t, result.Success)
	assert.Nil(t, result.Data, "error body is not parsed")
	assert.NotEmpty(t, result.Err)
}

func TestSubmitNetworkFailure(t *testing.T) {
	result := Submit(context.Background(), "http://127.0.0.1:1/unreachable", Collect(Snapshot{}), nil)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Err)
}

func TestSubmitCallerHeadersWin(t *testing.T) {
	var gotContentType, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	opts := &SubmitOptions{Header: http.Header{}}
	opts.Header.Set("Content-Type", "application/json; charset=utf-8")
	opts.Header.Set("Authorization", "Bearer t")

	result := Submit(context.Background(), srv.URL, Collect(Snapshot{}), opts)

	require.True(t, result.Success)
	assert.Equal(t, "application/json; charset=utf-8", gotContentType)
	assert.Equal(t, "Bearer t", gotAuth)
}
