// Package version carries the single version string shared by the CLI
// and MCP server.
package version

// Version is overridden at build time via -ldflags.
var Version = "dev"
