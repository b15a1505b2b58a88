// Package server assembles the bridge from configuration.
//
// It builds the host (a profile device, optionally with torch and
// brightness taken from sysfs), the inventory, launch and device providers,
// the dispatch router and the named channel, then serves the channel over a
// reader/writer pair until input ends, the context is cancelled or the
// caller's activities are torn down.
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg, logging.NewDefault())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//	err = srv.Run(ctx, os.Stdin, os.Stdout)
package server
