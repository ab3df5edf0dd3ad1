package localllm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(Response{Choices: []Choice{{Message: Message{Role: "assistant", Content: `{"title":"X"}`}}}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "", time.Second)
	text, err := c.Complete(context.Background(), "make soup")
	require.NoError(t, err)

	assert.Equal(t, `{"title":"X"}`, text)
	assert.Equal(t, DefaultModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "make soup", got.Messages[0].Content)
}

func TestComplete_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "bad", "", time.Second).Complete(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "API_KEY"))
}

func TestComplete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", "", time.Second).Complete(context.Background(), "x")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "API_KEY")
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", "", time.Second).Complete(context.Background(), "x")
	assert.EqualError(t, err, "no content found in response")
}
