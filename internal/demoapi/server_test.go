package demoapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/schema"
)

func newContext(t *testing.T, endpoint string) *orchestrator.Context {
	t.Helper()
	s := schema.MustNew(schema.Field{Name: "email", Type: schema.TypeString, Required: true})
	ctx, err := orchestrator.New(s,
		orchestrator.WithEndpoint(endpoint),
		orchestrator.WithDefaultValues(map[string]any{"email": "ada@example.com"}),
		orchestrator.WithHiddenValues(map[string]any{"source": "test"}),
	)
	require.NoError(t, err)
	t.Cleanup(ctx.Close)
	return ctx
}

func TestSubmit_AcceptsAndRecords(t *testing.T) {
	api := New(nil)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	res := newContext(t, srv.URL+"/submit").SubmitForm(context.Background())
	require.Equal(t, orchestrator.StatusSucceeded, res.Status)

	subs := api.Submissions()
	require.Len(t, subs, 1)
	require.Equal(t, map[string]any{"email": "ada@example.com", "source": "test"}, subs[0].Values)
	require.Equal(t, res.AttemptID, subs[0].RequestID)

	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, subs[0].ID, data["id"])
}

func TestFail_SurfacesServerMessages(t *testing.T) {
	srv := httptest.NewServer(New(nil).Handler())
	t.Cleanup(srv.Close)

	ctx := newContext(t, srv.URL+"/fail")
	res := ctx.SubmitForm(context.Background())
	require.Equal(t, orchestrator.StatusFailed, res.Status)
	require.Equal(t, FailMessage, ctx.State().Error)
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	ctx = newContext(t, srv.URL+"/fail/legacy")
	res = ctx.SubmitForm(context.Background())
	require.Equal(t, orchestrator.StatusFailed, res.Status)
	require.Equal(t, LegacyFailMessage, ctx.State().Error)
}

func TestRoutes(t *testing.T) {
	h := New(nil).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader("{not json")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"isSuccess":false,"error":{"message":"invalid JSON body"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/submit", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/submissions", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"isSuccess":true,"data":[]}`, rec.Body.String())
}
