// Package cli holds the jenkins-manager command line.
//
//   - cli/cmd: the root, provision and clean commands
//   - cli/ui: interactive prompts and command error normalization
package cli
