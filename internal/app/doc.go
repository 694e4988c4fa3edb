// Package app is the composition root for stargaze.
//
// # Overview
//
// Run wires configuration, logging, the feed client, the gallery
// controller and the UI, then blocks until the user quits or the context
// is cancelled. Nothing here is global; every collaborator is built once
// and handed to the UI explicitly.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.LoadDotEnv()   .env into the environment
//	       ├─────> config.Load()         TOML plus env overrides
//	       ├─────> diag.NewFileLogger()  zap, console encoding, file sink
//	       ├─────> apod.NewClient()      api_url and resolved key
//	       ├─────> prefs.Load()          theme and fact panel
//	       └─────> ui.Run()              Bubble Tea program (blocks)
//
// # Credentials
//
// The key is resolved by config.ClientKey: NASA_API_KEY, then api_key,
// then DEMO_KEY when talking to NASA directly. When api_url points at
// stargaze-proxy no key is sent at all.
//
// # Error Handling
//
// Fatal errors are returned from Run:
//   - unreadable or invalid config
//   - log file that cannot be created
//   - malformed api_url
//
// Feed failures are not fatal. They are logged and shown in the gallery.
//
// # Usage Example
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := app.Run(ctx, app.Options{Start: "2024-01-01", End: "2024-01-03"}); err != nil {
//		log.Fatal(err)
//	}
package app
