package dulcedosis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dulce-dosis-web/internal/domain/accounts"
	"dulce-dosis-web/internal/domain/treatments"
	"dulce-dosis-web/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenRequest struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

func newTestClient(t *testing.T, cfg Config, h func(w http.ResponseWriter, r *http.Request)) (*Client, *[]seenRequest) {
	t.Helper()
	var seen []seenRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr := seenRequest{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &sr.Body)
		}
		seen = append(seen, sr)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	hc, err := httpclient.NewWithBaseURL(srv.URL+"/api", 2*time.Second)
	require.NoError(t, err)
	return NewClient(hc, cfg), &seen
}

func TestRegister_PostsBodyWithoutAuth(t *testing.T) {
	c, seen := newTestClient(t, Config{}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"t1","user_id":42}`))
	})

	resp, err := c.Register(context.Background(), accounts.RegisterRequest{Username: "ana", Name: "Ana", Email: "a@a.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "t1", resp.Token)
	assert.Equal(t, "42", resp.Identifier())

	require.Len(t, *seen, 1)
	got := (*seen)[0]
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/auth/register/", got.Path)
	assert.Empty(t, got.Auth)
	assert.Equal(t, map[string]any{"username": "ana", "name": "Ana", "email": "a@a.com", "password": "secret1"}, got.Body)
}

func TestRegister_ErrorKeepsPayload(t *testing.T) {
	c, _ := newTestClient(t, Config{}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email":["already in use"]}`))
	})

	_, err := c.Register(context.Background(), accounts.RegisterRequest{Email: "a@a.com"})
	var he *httpclient.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.StatusCode)
	assert.Equal(t, "already in use", accounts.ServerMessage(err))
}

func TestList_PlainAndPaginated(t *testing.T) {
	body := `[{"id":7,"compartimento":1,"nombre_pastilla":"Metformina","dosis":"500mg","stock":30,"repeticion":"DIARIO","hora_toma":"08:00"}]`
	c, seen := newTestClient(t, Config{}, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	items, err := c.List(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "7", items[0].ID.String())
	assert.Equal(t, treatments.RepetitionDaily, items[0].Repetition)
	assert.Equal(t, "Token t1", (*seen)[0].Auth)
	assert.Equal(t, "/api/treatments/", (*seen)[0].Path)

	body = `{"count":1,"results":[{"id":"8","compartimento":2,"dosis":1.5,"repeticion":"CADA_X_HORAS","intervalo_horas":6}]}`
	items, err = c.List(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1.5", items[0].Dose.String())
	require.NotNil(t, items[0].IntervalHours)
	assert.Equal(t, 6, *items[0].IntervalHours)
}

func TestTreatmentsPathAndScheme(t *testing.T) {
	c, seen := newTestClient(t, Config{AuthScheme: "Bearer", TreatmentsPath: "/tratamientos/"}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "t1", "7"))
	got := (*seen)[0]
	assert.Equal(t, http.MethodDelete, got.Method)
	assert.Equal(t, "/api/tratamientos/7/", got.Path)
	assert.Equal(t, "Bearer t1", got.Auth)
}

func TestCreateAndUpdate(t *testing.T) {
	c, seen := newTestClient(t, Config{}, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
		}
		_, _ = w.Write([]byte(`{"id":9,"compartimento":3,"nombre_pastilla":"X","dosis":"1","stock":1,"repeticion":"DIARIO","hora_toma":"08:00"}`))
	})

	tr := treatments.Treatment{ID: "ignored", Compartment: 3, PillName: "X", Dose: "1", Stock: 1, Repetition: treatments.RepetitionDaily, TimeOfDay: "08:00"}
	created, err := c.Create(context.Background(), "t1", tr)
	require.NoError(t, err)
	assert.Equal(t, "9", created.ID.String())
	assert.NotContains(t, (*seen)[0].Body, "id")
	assert.Equal(t, float64(1), (*seen)[0].Body["dosis"])

	_, err = c.Update(context.Background(), "t1", created)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, (*seen)[1].Method)
	assert.Equal(t, "/api/treatments/9/", (*seen)[1].Path)
}

func TestMissingTokenMakesNoCall(t *testing.T) {
	c, seen := newTestClient(t, Config{}, func(w http.ResponseWriter, _ *http.Request) {})

	_, err := c.List(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, *seen)
}

func TestNotConfigured(t *testing.T) {
	c := NewClient(httpclient.New(time.Second), Config{})
	_, err := c.Register(context.Background(), accounts.RegisterRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
