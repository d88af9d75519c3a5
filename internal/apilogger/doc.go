// Package apilogger provides a logging reverse proxy for model API traffic.
//
// Each sandbox gets a sidecar running this proxy. The coding agent inside
// the sandbox points its API base URL at the sidecar, which forwards every
// request to the real API and appends one JSONL record per exchange.
//
// # Key Features
//
//   - Transparent forwarding: auth headers pass through untouched
//   - Per-project daily logs: {logRoot}/{project}/api-log-YYYY-MM-DD.jsonl
//   - Previews instead of payloads: at most 500 characters of prompt and
//     response are kept, plus token usage and timing
//   - Report reads the logs back into per-day summaries
//
// # Configuration
//
//	cfg := &apilogger.Config{
//	    ListenAddr: ":8000",
//	    Project:    "myproject",
//	    LogRoot:    "/data/api-logs",
//	}
//
// # Running the Proxy
//
//	srv, err := apilogger.NewServer(cfg)
//	if err != nil {
//	    return err
//	}
//	srv.Start() // Blocks, serving requests
//
// # Endpoints
//
//   - GET /health: liveness probe, reports the project name
//   - GET /stats: today's request and token counters
//   - everything else: proxied upstream and logged
package apilogger
