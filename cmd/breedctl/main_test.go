package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorded struct {
	method, path, body string
}

func fakeAPI(t *testing.T) (*httptest.Server, func() []recorded) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recorded{r.Method, r.URL.EscapedPath(), string(b)})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/breeds":
			_, _ = io.WriteString(w, `["akita","beagle"]`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/favorites":
			_, _ = io.WriteString(w, `[]`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/favorites":
			var req map[string]string
			_ = json.Unmarshal(b, &req)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Breed '" + req["breed"] + "' added to favorites"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/breeds/unicorn/images/2":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"code":"BREED_NOT_FOUND","message":"Breed 'unicorn' not found"}`)
		case r.Method == http.MethodGet && r.URL.Path == "/readyz":
			_, _ = io.WriteString(w, `{"status":"ready"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), calls...)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBreedsList(t *testing.T) {
	srv, _ := fakeAPI(t)

	out, err := run(t, "--api-url", srv.URL, "breeds", "list")
	require.NoError(t, err)
	require.Equal(t, "akita\nbeagle\n", out)

	out, err = run(t, "--api-url", srv.URL, "--out", "json", "breeds", "list")
	require.NoError(t, err)
	require.JSONEq(t, `["akita","beagle"]`, out)
}

func TestFavoritesAddAndList(t *testing.T) {
	srv, calls := fakeAPI(t)

	out, err := run(t, "--api-url", srv.URL, "favorites", "add", "Beagle")
	require.NoError(t, err)
	require.Equal(t, "Breed 'Beagle' added to favorites\n", out)
	require.Equal(t, `{"breed":"Beagle"}`, calls()[0].body)

	out, err = run(t, "--api-url", srv.URL, "favorites", "list")
	require.NoError(t, err)
	require.Equal(t, "(vacío)\n", out)
}

func TestFavoritesRemove_EscapesBreed(t *testing.T) {
	srv, calls := fakeAPI(t)

	_, err := run(t, "--api-url", srv.URL, "favorites", "remove", "saint bernard")
	require.Error(t, err)
	require.Equal(t, http.MethodDelete, calls()[0].method)
	require.Equal(t, "/api/favorites/saint%20bernard", calls()[0].path)
}

func TestBreedsImages_APIError(t *testing.T) {
	srv, _ := fakeAPI(t)

	_, err := run(t, "--api-url", srv.URL, "breeds", "images", "unicorn", "2")
	require.ErrorContains(t, err, "BREED_NOT_FOUND: Breed 'unicorn' not found")

	_, err = run(t, "--api-url", srv.URL, "breeds", "images", "beagle", "cero")
	require.ErrorContains(t, err, "quantity debe ser un entero positivo")
}

func TestPingAndBadOut(t *testing.T) {
	srv, _ := fakeAPI(t)

	out, err := run(t, "--api-url", srv.URL, "ping")
	require.NoError(t, err)
	require.Equal(t, "ok\n", out)

	_, err = run(t, "--api-url", srv.URL, "--out", "yaml", "ping")
	require.ErrorContains(t, err, "--out inválido")
}
