// Package config loads showcase server configuration.
//
// Settings come from three layers, later layers winning:
//
//  1. built-in defaults (New)
//  2. showcase.json in the working directory, or the file given with --config
//  3. environment variables prefixed with SHOWCASE_, optionally read from .env
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "0.0.0.0",
//	    "port": 8080,
//	    "title": "Showcase",
//	    "allowedOrigins": ["https://example.com"],
//	    "shutdownTimeout": "10s"
//	  },
//	  "session": {
//	    "idleTimeout": "30m",
//	    "maxInstances": 10000,
//	    "maxPerIP": 100
//	  },
//	  "log": {"level": "info", "format": "text"},
//	  "telemetry": {"metrics": true, "tracing": false}
//	}
//
// The matching environment variables are SHOWCASE_SERVER_PORT,
// SHOWCASE_SESSION_IDLE_TIMEOUT, SHOWCASE_LOG_LEVEL and so on.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Listening on", cfg.Address())
package config
