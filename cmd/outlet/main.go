// Command outlet uploads an OCDS release package to storage and records the
// public URL of every object written.
//
//	outlet s3 --bucket releases --input package.json --key-prefix dumps
//	outlet local --base-path ./out --batch-size 1000 --manifest manifest.json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/ocdsoutlet/bootstrap"
	"github.com/kbukum/ocdsoutlet/config"
	"github.com/kbukum/ocdsoutlet/logger"
	"github.com/kbukum/ocdsoutlet/manifest"
	"github.com/kbukum/ocdsoutlet/observability"
	"github.com/kbukum/ocdsoutlet/outlet"
	"github.com/kbukum/ocdsoutlet/outlet/local"
	"github.com/kbukum/ocdsoutlet/outlet/minio"
	"github.com/kbukum/ocdsoutlet/outlet/s3"
	"github.com/kbukum/ocdsoutlet/packer"
	"github.com/kbukum/ocdsoutlet/release"
	"github.com/kbukum/ocdsoutlet/render"
	"github.com/kbukum/ocdsoutlet/version"
)

const serviceName = "outlet"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmds := commands()
	if len(args) == 0 {
		usage(stderr, cmds)
		return 2
	}

	switch args[0] {
	case "version", "--version":
		fmt.Fprintln(stdout, version.Get().String())
		return 0
	case "help", "-h", "--help":
		usage(stdout, cmds)
		return 0
	}

	cmd, ok := cmds[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "outlet: unknown command %q\n\n", args[0])
		usage(stderr, cmds)
		return 2
	}
	cmd.flags.SetOutput(stderr)
	if err := cmd.flags.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(stderr, "outlet: %v\n", err)
		return 1
	}

	app, err := bootstrap.NewApp(cfg, bootstrap.WithSummary(stderr))
	if err != nil {
		fmt.Fprintf(stderr, "outlet: %v\n", err)
		return 1
	}

	if err := upload(ctx, app, stdin, stdout); err != nil {
		app.Logger.Error("run failed", logger.ErrorFields("run", err))
		return 1
	}
	return 0
}

func loadConfig(cmd *command) (*runConfig, error) {
	cfg := &runConfig{backend: cmd.name}
	opts := []config.LoaderOption{config.WithFlags(cmd.flags, cmd.keys)}
	if path, _ := cmd.flags.GetString("config"); path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Version == "" {
		cfg.Version = version.Short()
	}
	return cfg, nil
}

// newRegistry registers every storage backend this binary ships.
func newRegistry() (*outlet.Registry, error) {
	reg := outlet.NewRegistry()
	for _, register := range []func(*outlet.Registry) error{s3.Register, minio.Register, local.Register} {
		if err := register(reg); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func upload(ctx context.Context, app *bootstrap.App[*runConfig], stdin io.Reader, stdout io.Writer) error {
	cfg := app.Cfg

	base, releases, err := readPackage(cfg.Input, stdin)
	if err != nil {
		return err
	}

	reg, err := newRegistry()
	if err != nil {
		return err
	}
	renderer, err := render.ByName(cfg.Outlet.Renderer)
	if err != nil {
		return err
	}
	metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
	if err != nil {
		return err
	}
	providerCfg, err := cfg.providerConfig()
	if err != nil {
		return err
	}

	m := manifest.New()
	o, err := outlet.New(cfg.backend, reg, providerCfg, outlet.Options{
		KeyPrefix: cfg.Outlet.KeyPrefix,
		Renderer:  renderer,
		Manifest:  m,
		Metrics:   metrics,
	}, app.Logger)
	if err != nil {
		return err
	}

	telemetry := observability.NewTelemetry(cfg.Telemetry, observability.Resource{
		ServiceName:    cfg.Name,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Environment,
	}, app.Logger)
	storage := outlet.NewComponent(o, base)
	if err := app.RegisterComponent(telemetry); err != nil {
		return err
	}
	if err := app.RegisterComponent(storage); err != nil {
		return err
	}

	return app.RunTask(ctx, func(ctx context.Context) error {
		p, err := packer.New(storage.Handler(), cfg.Packer, m, app.Logger)
		if err != nil {
			return err
		}
		report, err := p.Run(ctx, releases)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	})
}

func readPackage(path string, stdin io.Reader) (release.Package, []release.Release, error) {
	if path == "" || path == "-" {
		return packer.Load(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return release.Package{}, nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return packer.Load(f)
}
