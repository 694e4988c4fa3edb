// Package config loads stargaze configuration.
//
// # Overview
//
// Both binaries read the same TOML file. stargaze uses the feed settings;
// stargaze-proxy uses the [proxy] table and the API key.
//
// # Resolution Order
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/stargaze/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Empty or non-positive fields keep their defaults
//  5. NASA_API_KEY and STARGAZE_API_URL override the file
//
// LoadDotEnv can populate the environment from a .env file before Load runs.
//
// # Credentials
//
// No key is compiled in. ClientKey falls back to DEMO_KEY only when
// api_url is NASA's endpoint; pointed anywhere else, the client sends no
// key and expects a proxy to add one. For stargaze-proxy that means the
// full feed path, for example api_url = "http://127.0.0.1:8787/api/apod";
// the proxy root answers 404. UpstreamKey always resolves to a key.
//
// # TOML Format
//
//	api_url = "https://api.nasa.gov/planetary/apod"
//	api_key = ""
//	timeout = "10s"
//	range_days = 9
//	excerpt_length = 180
//	log_file = "~/.local/share/stargaze/stargaze.log"
//
//	[proxy]
//	bind = "127.0.0.1:8787"
//	upstream = "https://api.nasa.gov/planetary/apod"
package config
