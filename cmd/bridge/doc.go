// Command bridge serves the host capability channel on stdin and stdout.
//
// Each input line is one JSON request envelope and is answered by exactly
// one JSON response line. Logs go to stderr.
//
// Usage:
//
//	bridge -profile device.yaml [-channel name] [-dev]
//
// Configuration is read from the environment (BRIDGE_*, BRIGHTNESS_STEP,
// LOG_LEVEL, LOG_DEV, METRICS_TEXTFILE); flags override it.
package main
