package outlet

import (
	"context"
	"fmt"

	"github.com/kbukum/ocdsoutlet/component"
	"github.com/kbukum/ocdsoutlet/release"
)

// Component connects an Outlet when the run starts.
type Component struct {
	outlet  *Outlet
	base    release.Package
	handler *Handler
}

var _ component.Component = (*Component)(nil)

// NewComponent returns a component creating a handler for base on Start.
func NewComponent(o *Outlet, base release.Package) *Component {
	return &Component{outlet: o, base: base}
}

// Handler returns the connected handler, or nil before Start.
func (c *Component) Handler() *Handler { return c.handler }

// Name implements component.Component.
func (c *Component) Name() string { return "outlet" }

// Start connects to the backend.
func (c *Component) Start(ctx context.Context) error {
	h, err := c.outlet.Create(ctx, c.base)
	if err != nil {
		return err
	}
	c.handler = h
	return nil
}

// Stop releases the handler. Connections live as long as the process.
func (c *Component) Stop(_ context.Context) error {
	c.handler = nil
	return nil
}

// Health implements component.Component.
func (c *Component) Health(_ context.Context) component.Health {
	if c.handler == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not connected"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	details := "backend=" + c.outlet.backend
	if c.handler != nil {
		details += fmt.Sprintf(" bucket=%s", c.handler.bucket.Name())
	}
	if c.outlet.opts.KeyPrefix != "" {
		details += " prefix=" + c.outlet.opts.KeyPrefix
	}
	return component.Description{Name: "Outlet", Type: "storage", Details: details}
}
