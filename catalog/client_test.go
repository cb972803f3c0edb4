package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMovie(t *testing.T) {
	var got CreateMovieRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/movies", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"m-42"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)

	id, err := c.CreateMovie(context.Background(), &CreateMovieRequest{
		Title:     "Heat",
		Year:      1995,
		StreamURL: "http://localhost/api/files/f1",
	})
	require.NoError(t, err)
	assert.Equal(t, "m-42", id)
	assert.Equal(t, "Heat", got.Title)
	assert.Equal(t, 1995, got.Year)
}

func TestCreateMovieRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "duplicate title", http.StatusConflict)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)

	_, err := c.CreateMovie(context.Background(), &CreateMovieRequest{Title: "Heat"})
	require.Error(t, err)

	var catErr *Error
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, http.StatusConflict, catErr.StatusCode)
	assert.False(t, catErr.Unreachable)
	assert.Contains(t, catErr.Error(), "rejected by catalog")
}

func TestCreateMovieServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "try later", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)

	_, err := c.CreateMovie(context.Background(), &CreateMovieRequest{Title: "Heat"})
	require.Error(t, err)

	var catErr *Error
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, http.StatusServiceUnavailable, catErr.StatusCode)
	assert.True(t, catErr.Unreachable)
}

func TestCreateMovieUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, time.Second)

	_, err := c.CreateMovie(context.Background(), &CreateMovieRequest{Title: "Heat"})
	require.Error(t, err)

	var catErr *Error
	require.ErrorAs(t, err, &catErr)
	assert.True(t, catErr.Unreachable)
	assert.Equal(t, 0, catErr.StatusCode)
}

func TestCreateMovieEmptyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	_, err := c.CreateMovie(context.Background(), &CreateMovieRequest{Title: "Heat"})
	var catErr *Error
	require.ErrorAs(t, err, &catErr)
	assert.Contains(t, catErr.Message, "no movie id")

	// The catalog answered, just uselessly. Don't file it under
	// rejected or unreachable
	assert.False(t, catErr.Unreachable)
	assert.Contains(t, catErr.Error(), "malformed catalog response")
}

func TestDeleteMovie(t *testing.T) {
	deleted := ""

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)

	require.NoError(t, c.DeleteMovie(context.Background(), "m-42"))
	assert.Equal(t, "/api/movies/m-42", deleted)
}

func TestCreateMovieHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body first, otherwise the server never notices the
		// client going away and Close would hang on this handler
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := New(srv.URL, 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.CreateMovie(ctx, &CreateMovieRequest{Title: "Heat"})
	require.Error(t, err)

	var catErr *Error
	assert.True(t, errors.As(err, &catErr))
	assert.True(t, catErr.Unreachable)
}
