package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kbukum/ocdsoutlet/component"
)

// Summary prints what a run is connected to once all components started.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	out             io.Writer
}

// NewSummary creates a summary printed to out, or to stderr when out is nil.
func NewSummary(serviceName, version string, out io.Writer) *Summary {
	if out == nil {
		out = os.Stderr
	}
	return &Summary{serviceName: serviceName, version: version, out: out}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display prints the components of registry with their live health.
func (s *Summary) Display(ctx context.Context, registry *component.Registry) {
	version := s.version
	if version == "" {
		version = "dev"
	}
	fmt.Fprintf(s.out, "\n%s %s ready in %.2fs\n", s.serviceName, version, s.startupDuration.Seconds())

	if registry == nil || len(registry.All()) == 0 {
		fmt.Fprintf(s.out, "   └── No components registered\n\n")
		return
	}

	health := make(map[string]component.Health)
	for _, h := range registry.HealthAll(ctx) {
		health[h.Name] = h
	}

	all := registry.All()
	for i, c := range all {
		prefix := "├──"
		if i == len(all)-1 {
			prefix = "└──"
		}
		name, kind, details := c.Name(), "", ""
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name != "" {
				name = desc.Name
			}
			kind, details = desc.Type, desc.Details
		}
		h := health[c.Name()]
		line := fmt.Sprintf("   %s %s %s", prefix, healthStatusIcon(h.Status), name)
		if kind != "" {
			line += " [" + kind + "]"
		}
		if details != "" {
			line += ": " + details
		}
		if h.Message != "" {
			line += " (" + strings.ToLower(h.Message) + ")"
		}
		fmt.Fprintln(s.out, line)
	}
	fmt.Fprintln(s.out)
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
