// Package cmd provides the command-line interface for jenkins-manager.
//
// The root command carries the persistent --config flag and these subcommands:
//   - provision: bring up the Jenkins controller and its SSH agents with docker compose
//   - clean: remove every container, image, volume, network and the build cache on the host
//   - schema: print the JSON schema of jenkins-manager.yaml
package cmd
