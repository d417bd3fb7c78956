// Package compose drives the docker compose CLI and reads compose files.
//
// Scaling and building services is delegated to `docker compose up`; there is no Go API for
// compose's project model in the Engine client, so the CLI is run through runner.CommandRunner.
// Compose files are parsed only to find the project name and the agent and controller services.
package compose
