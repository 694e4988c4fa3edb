// Package apod provides an HTTP client for NASA's Astronomy Picture of the
// Day feed.
//
// # Overview
//
// The package builds feed requests, performs them, and decodes the JSON
// payload into Entry values. It never filters, sorts or renders entries;
// deciding which entries are shown is the gallery's job.
//
// # Architecture
//
//   - client.go: Client, the Fetcher interface, request construction
//   - dates.go: archive window, DateRange validation, random day selection
//   - errors.go: Error and its Kind taxonomy
//   - types.go: Entry and MediaType mirroring the feed schema
//
// # Request Modes
//
// Range mode sends start_date and end_date and expects a JSON array:
//
//	GET {api_url}?api_key=KEY&start_date=2024-01-01&end_date=2024-01-03
//
// Single-date mode sends date and expects a JSON object:
//
//	GET {api_url}?api_key=KEY&date=2001-07-04
//
// FetchRandom picks the date uniformly from [1995-06-16, today] before
// issuing a single-date request.
//
// When the client is built with an empty key the api_key parameter is left
// off. Point api_url at stargaze-proxy in that setup so the credential stays
// on the server.
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind:
//
//   - KindValidation: missing or malformed dates, detected before any I/O
//   - KindNetwork: dial/timeout failures and any status outside 2xx
//   - KindParse: a body that is not the expected JSON shape
//
// Error.Message returns a line fit for display; Error.Error keeps the
// operation and cause for logs. Nothing is retried here.
//
// # Usage Example
//
//	client, err := apod.NewClient(apod.DefaultEndpoint, os.Getenv("NASA_API_KEY"))
//	if err != nil {
//		return err
//	}
//	r, err := apod.NewDateRange("2024-01-01", "2024-01-03", time.Now())
//	if err != nil {
//		return err
//	}
//	entries, err := client.FetchRange(ctx, r)
//
// # Thread Safety
//
// Client is safe for concurrent use once constructed.
package apod
