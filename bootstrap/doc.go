// Package bootstrap runs a one-shot job inside the component lifecycle.
//
// NewApp applies defaults to and validates the typed config, initializes
// the logger and creates the component registry. RunTask starts every
// component, runs the task with a context canceled on SIGINT or SIGTERM
// and stops the components again in reverse order:
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(telemetry)
//	app.RegisterComponent(storage)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return upload(ctx)
//	})
package bootstrap
