// Package utils provides utility packages for common operations.
//
//   - envvar: ${VAR} expansion in configuration values
//   - logging: debug log file setup with logrus
//   - notify: formatted message display with symbols, colors, and timing
//   - timer: execution time tracking for single and multi-stage operations
package utils
