package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/goliatone/go-dynform"
	"github.com/goliatone/go-dynform/pkg/schema"
)

// loadForm reads the definition behind location (a path or http(s) URL) and
// scaffolds a form for it. With operation set, location must be an OpenAPI
// document and the form is derived from that operation's request body.
func (a *app) loadForm(ctx context.Context, location, operation string) (*dynform.Form, *schema.Document, error) {
	doc, err := a.loadDocument(ctx, location, operation)
	if err != nil {
		return nil, nil, err
	}
	opts, err := a.formOptions(doc.Endpoint)
	if err != nil {
		return nil, nil, err
	}
	form, err := dynform.NewFromDocument(doc, opts...)
	if err != nil {
		return nil, nil, err
	}
	if err := form.Scaffold(); err != nil {
		form.Close()
		return nil, nil, err
	}
	return form, doc, nil
}

func (a *app) loadDocument(ctx context.Context, location, operation string) (*schema.Document, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("--schema is required")
	}
	if operation != "" {
		raw, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return schema.FromOpenAPI(ctx, raw, operation)
	}

	var src schema.Source
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		var err error
		if src, err = schema.SourceFromURL(location); err != nil {
			return nil, err
		}
	} else {
		src = schema.SourceFromFile(location)
	}
	return schema.Load(ctx, src, schema.LoadOptions{
		HTTPClient: &http.Client{Timeout: a.cfg.Timeout},
		Timeout:    a.cfg.Timeout,
	})
}
