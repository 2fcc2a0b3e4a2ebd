package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/text"
)

func newRenderCmd(a *app) *cobra.Command {
	var schemaPath, operation, format, title string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a form screen without prompting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, doc, err := a.loadForm(cmd.Context(), schemaPath, operation)
			if err != nil {
				return err
			}
			defer form.Close()

			registry, err := a.renderers(cmd)
			if err != nil {
				return err
			}
			if title == "" {
				title = doc.Title
			}
			out, _, err := registry.Render(cmd.Context(), format, form, render.Options{
				Title:   title,
				Locale:  a.cfg.Locale,
				Theme:   a.cfg.Theme.Name,
				Variant: a.cfg.Theme.Variant,
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "form definition (YAML/JSON path or URL, or an OpenAPI file with --operation)")
	cmd.Flags().StringVar(&operation, "operation", "", "OpenAPI operation id to derive the form from")
	cmd.Flags().StringVarP(&format, "format", "f", text.Name, "renderer name")
	cmd.Flags().StringVar(&title, "title", "", "title printed above the form (default: document title)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func (a *app) renderers(cmd *cobra.Command) (*render.Registry, error) {
	opts := []text.Option{text.WithOutput(cmd.OutOrStdout())}
	if a.cfg.Theme.Name != "" {
		opts = append(opts, text.WithThemeSelector(configSelector{cfg: a.cfg.Theme}, a.cfg.Theme.Name, a.cfg.Theme.Variant))
	}
	tr, err := text.New(opts...)
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(tr)
}
