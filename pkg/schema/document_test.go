package schema

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const loginDocument = `
id: login
title: Sign in
endpoint: https://api.example.com/login
defaults:
  email: ""
  rememberMe: true
  interests: [travel]
  volume: 30
fields:
  - name: email
    type: string
    required: true
    format: email
    messages:
      format: Enter a valid e-mail address
  - name: password
    type: string
    minLength: 6
  - name: rememberMe
    type: boolean
  - name: interests
    type: strings
  - name: volume
    type: number
    maximum: 100
`

func TestParse_Document(t *testing.T) {
	doc, err := Parse([]byte(loginDocument))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.ID != "login" || doc.Endpoint != "https://api.example.com/login" {
		t.Fatalf("unexpected header: %+v", doc)
	}

	wantDefaults := map[string]any{
		"email":      "",
		"rememberMe": true,
		"interests":  []any{"travel"},
		"volume":     float64(30),
	}
	if diff := cmp.Diff(wantDefaults, doc.Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	s, err := doc.Schema()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "password", "rememberMe", "interests", "volume"}, s.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got := s.Validate(map[string]any{"email": "x"}); got["email"] != "Enter a valid e-mail address" {
		t.Fatalf("unexpected validation: %v", got)
	}
}

func TestParse_RejectsUnknownKeysAndEmptyDocuments(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := Parse([]byte("fields:\n  - name: a\n    type: string\n    minLen: 3\n")); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if _, err := Parse([]byte("id: empty\n")); err == nil {
		t.Fatalf("expected error for document without fields")
	}
}

func TestParse_AcceptsJSON(t *testing.T) {
	doc, err := Parse([]byte(`{"fields":[{"name":"city","type":"string","enum":["34","06"]}]}`))
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if diff := cmp.Diff([]string{"34", "06"}, doc.Fields[0].Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/login.yaml": {Data: []byte(loginDocument)},
	}
	doc, err := Load(context.Background(), SourceFromFS("forms/login.yaml"), LoadOptions{FileSystem: fsys})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Title != "Sign in" {
		t.Fatalf("unexpected title %q", doc.Title)
	}

	if _, err := Load(context.Background(), SourceFromFS("forms/login.yaml"), LoadOptions{}); err == nil {
		t.Fatalf("expected error without file system")
	}
}

func TestLoad_FromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(loginDocument))
	}))
	defer server.Close()

	src, err := SourceFromURL(server.URL + "/login.yaml")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	doc, err := Load(context.Background(), src, LoadOptions{HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(doc.Fields))
	}

	missing, _ := SourceFromURL(server.URL + "/missing.yaml")
	if _, err := Load(context.Background(), missing, LoadOptions{HTTPClient: server.Client()}); err == nil {
		t.Fatalf("expected status error")
	}
	if _, err := SourceFromURL("::"); err == nil {
		t.Fatalf("expected invalid url error")
	}
}
