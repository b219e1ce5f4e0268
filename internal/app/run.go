package app

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/plugbuild/internal/config"
	"github.com/specialistvlad/plugbuild/internal/ctxlog"
)

// Run loads the configuration, builds every component in it and reports the
// diagnostics. The returned report is nil only when loading failed.
//
// With a healthcheck port configured, Run keeps serving the report until ctx
// is cancelled.
func (a *App) Run(ctx context.Context) (*Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.LoadModel(ctx)
	if err != nil {
		return nil, err
	}

	a.logger.Info("🚀 Building components...")
	report := a.Materialize(ctx, model)
	a.writeDiagnostics(model, report.Diagnostics())
	a.logger.Info("🏁 Build finished.", "built", report.Built(), "failed", report.Failed(), "diagnostics", len(report.Diagnostics()))

	if a.config.HealthcheckPort > 0 {
		if err := a.serveHealthcheck(ctx, report); err != nil {
			return report, err
		}
	}

	if a.config.Strict && report.HasErrors() {
		return report, fmt.Errorf("configuration has errors: %d component(s) failed, %d diagnostic(s)", report.Failed(), len(report.Diagnostics()))
	}

	a.logger.Debug("App.Run method finished.")
	return report, nil
}

func (a *App) writeDiagnostics(model *config.Model, diags hcl.Diagnostics) {
	if len(diags) == 0 {
		return
	}
	wr := hcl.NewDiagnosticTextWriter(a.outW, model.Files, 100, false)
	if err := wr.WriteDiagnostics(diags); err != nil {
		a.logger.Error("Failed to write diagnostics.", "error", err)
	}
}
