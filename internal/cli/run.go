package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/base-14/examples/go/parking-lot/internal/config"
	"github.com/base-14/examples/go/parking-lot/internal/logging"
	"github.com/base-14/examples/go/parking-lot/internal/parking"
	"github.com/base-14/examples/go/parking-lot/internal/server"
	"github.com/base-14/examples/go/parking-lot/internal/shell"
	"github.com/base-14/examples/go/parking-lot/internal/telemetry"
)

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.New(ctx, telemetry.Config{
		ServiceName:    cfg.ServiceName,
		Environment:    cfg.Environment,
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		ExportInterval: cfg.Telemetry.MetricsInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer shutdownTelemetry(tp)

	lot, err := parking.NewInstrumentedParkingLot(tp)
	if err != nil {
		return fmt.Errorf("failed to create parking lot: %w", err)
	}

	if cfg.DiagnosticsAddr != "" {
		srv := server.NewServer(cfg.DiagnosticsAddr, cfg.ServiceName, lot, tp.Tracer())
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("failed to start diagnostics server: %w", err)
		}
		defer shutdownServer(srv)
	}

	in := cmd.InOrStdin()
	if cfg.File != "" {
		f, err := os.Open(cfg.File)
		if err != nil {
			return fmt.Errorf("failed to open command file: %w", err)
		}
		defer f.Close()
		in = f
	}

	return runUntilDone(ctx, shell.New(
		parking.NewAttendant(lot),
		tp.Tracer(),
		in,
		cmd.OutOrStdout(),
		cmd.ErrOrStderr(),
	))
}

// runUntilDone returns when the shell finishes or a signal arrives. A shell
// blocked on reading stdin is left behind in the second case; nothing else
// touches the lot afterwards.
func runUntilDone(ctx context.Context, sh *shell.Shell) error {
	done := make(chan error, 1)
	go func() {
		done <- sh.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		logging.Info(ctx).Msg("received shutdown signal")
		return nil
	}
}

func shutdownTelemetry(tp *telemetry.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := tp.Shutdown(ctx); err != nil {
		logging.Error(ctx).Err(err).Msg("failed to shutdown telemetry")
	}
}

func shutdownServer(srv *server.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error(ctx).Err(err).Msg("diagnostics server shutdown error")
	}
}
