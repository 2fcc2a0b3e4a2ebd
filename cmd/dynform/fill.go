package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

func newFillCmd(a *app) *cobra.Command {
	var schemaPath, operation string
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a form interactively and submit it",
		Example: `  dynform fill --schema profile.yaml --dry-run
  dynform fill --schema api.json --operation createProfile --base-url http://localhost:8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			form, _, err := a.loadForm(ctx, schemaPath, operation)
			if err != nil {
				return err
			}
			defer form.Close()

			res, err := tui.New(
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithLogger(a.logger),
			).Fill(ctx, form)
			if err != nil {
				return err
			}
			a.logger.Info("fill finished", zap.String("status", string(res.Status)), zap.String("attempt_id", res.AttemptID))

			switch res.Status {
			case orchestrator.StatusDryRun, orchestrator.StatusSucceeded:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res.Data)
			case orchestrator.StatusFailed:
				return fmt.Errorf("submission failed: %s", res.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "form definition (YAML/JSON path or URL, or an OpenAPI file with --operation)")
	cmd.Flags().StringVar(&operation, "operation", "", "OpenAPI operation id to derive the form from")
	cmd.Flags().String("endpoint", "", "submission endpoint (overrides the document)")
	cmd.Flags().String("base-url", "", "base URL for relative endpoints")
	cmd.Flags().Bool("dry-run", false, "validate and print values without submitting")
	_ = a.v.BindPFlag("endpoint", cmd.Flags().Lookup("endpoint"))
	_ = a.v.BindPFlag("base_url", cmd.Flags().Lookup("base-url"))
	_ = a.v.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}
