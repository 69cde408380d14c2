package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/ocdsoutlet/component"
	"github.com/kbukum/ocdsoutlet/config"
	"github.com/kbukum/ocdsoutlet/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	events   *[]string
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	m.record("start:" + m.name)
	m.started = m.startErr == nil
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	m.record("stop:" + m.name)
	m.stopped = true
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) component.Health {
	if m.health.Name == "" {
		return component.Health{Name: m.name, Status: component.StatusHealthy}
	}
	return m.health
}
func (m *mockComponent) Describe() component.Description {
	return component.Description{Type: "storage", Details: "bucket=releases"}
}
func (m *mockComponent) record(e string) {
	if m.events != nil {
		*m.events = append(*m.events, e)
	}
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "ocds-outlet", Version: "1.0.0", Environment: "development"}}
	opts = append([]Option{WithLogger(logger.NewNop()), WithSummary(nil)}, opts...)
	app, err := NewApp(cfg, opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "ocds-outlet" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %q %q", app.Name, app.Version)
	}
	if app.Components == nil || app.Logger == nil || app.Summary == nil {
		t.Fatal("expected registry, logger and summary")
	}
	if app.gracefulTimeout != DefaultGracefulTimeout {
		t.Errorf("expected default timeout, got %v", app.gracefulTimeout)
	}
	if app.Cfg.Logging.Level != "debug" {
		t.Errorf("expected defaults applied, got level %q", app.Cfg.Logging.Level)
	}
}

func TestNewAppValidation(t *testing.T) {
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "svc", Environment: "qa"}}
	if _, err := NewApp(cfg, WithLogger(logger.NewNop())); err == nil {
		t.Error("expected error for invalid environment")
	}
}

func TestWithGracefulTimeout(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(30*time.Second))
	if app.gracefulTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", app.gracefulTimeout)
	}
}

func TestRegisterComponentDuplicate(t *testing.T) {
	app := newTestApp(t)
	if err := app.RegisterComponent(&mockComponent{name: "outlet"}); err != nil {
		t.Fatal(err)
	}
	if err := app.RegisterComponent(&mockComponent{name: "outlet"}); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestRunTaskOrder(t *testing.T) {
	var events []string
	app := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "telemetry", events: &events})
	_ = app.RegisterComponent(&mockComponent{name: "outlet", events: &events})

	err := app.RunTask(context.Background(), func(context.Context) error {
		events = append(events, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := "start:telemetry,start:outlet,task,stop:outlet,stop:telemetry"
	if got := strings.Join(events, ","); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRunTaskError(t *testing.T) {
	app := newTestApp(t)
	c := &mockComponent{name: "outlet", stopErr: errors.New("close failed")}
	_ = app.RegisterComponent(c)

	taskErr := errors.New("upload failed")
	err := app.RunTask(context.Background(), func(context.Context) error { return taskErr })
	if !errors.Is(err, taskErr) {
		t.Errorf("expected task error to win, got %v", err)
	}
	if !c.stopped {
		t.Error("expected component stopped after task error")
	}
}

func TestRunTaskStopError(t *testing.T) {
	app := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "outlet", stopErr: errors.New("close failed")})

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "close failed") {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestRunTaskComponentStartError(t *testing.T) {
	app := newTestApp(t)
	first := &mockComponent{name: "telemetry"}
	failing := &mockComponent{name: "outlet", startErr: errors.New("no such bucket")}
	_ = app.RegisterComponent(first)
	_ = app.RegisterComponent(failing)

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
	if err == nil || !strings.Contains(err.Error(), "no such bucket") {
		t.Errorf("expected start error, got %v", err)
	}
	if ran {
		t.Error("task must not run when a component fails to start")
	}
	if !first.stopped {
		t.Error("expected started component stopped")
	}
	if failing.stopped {
		t.Error("component that failed to start must not be stopped")
	}
}

func TestRunTaskCancellation(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.RunTask(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestReadyCheck(t *testing.T) {
	app := newTestApp(t)
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Errorf("empty registry should be ready, got %v", err)
	}

	_ = app.RegisterComponent(&mockComponent{
		name:   "outlet",
		health: component.Health{Name: "outlet", Status: component.StatusUnhealthy, Message: "not connected"},
	})
	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "outlet=unhealthy(not connected)") {
		t.Errorf("expected unhealthy report, got %v", err)
	}
}

func TestSummaryDisplay(t *testing.T) {
	var buf bytes.Buffer
	reg := component.NewRegistry(nil)
	_ = reg.Register(&mockComponent{name: "outlet"})

	s := NewSummary("ocds-outlet", "", &buf)
	s.SetStartupDuration(1500 * time.Millisecond)
	s.Display(context.Background(), reg)

	out := buf.String()
	for _, want := range []string{"ocds-outlet dev ready in 1.50s", "└── ✅ outlet [storage]: bucket=releases"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}
}

func TestSummaryDisplayEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewSummary("svc", "1.0", &buf).Display(context.Background(), nil)
	if !strings.Contains(buf.String(), "No components registered") {
		t.Errorf("unexpected summary %q", buf.String())
	}
}

func TestHealthStatusIcon(t *testing.T) {
	tests := map[component.HealthStatus]string{
		component.StatusHealthy:   "✅",
		component.StatusDegraded:  "⚠️",
		component.StatusUnhealthy: "❌",
		"unknown":                 "❓",
	}
	for status, want := range tests {
		if got := healthStatusIcon(status); got != want {
			t.Errorf("healthStatusIcon(%q) = %q, want %q", status, got, want)
		}
	}
}
