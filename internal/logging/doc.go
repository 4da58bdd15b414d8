// Package logging sets up slog for seroost. Logs are JSON lines written to a
// size-rotated file under ~/.seroost/logs; --debug lowers the level and mirrors
// output to stderr. The serve command never writes logs to stdout or stderr
// because stdout carries the MCP protocol stream.
package logging
