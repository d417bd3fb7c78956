// Package client provides the clients jenkins-manager talks to the host with.
//
//   - compose: docker compose CLI invocation and compose file inspection
//   - docker: Docker Engine API subset for containers, images, volumes, networks and build cache
//   - netretry: classification of transient network errors worth retrying
package client
