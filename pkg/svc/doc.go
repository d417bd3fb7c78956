// Package svc provides the service layer of jenkins-manager.
//
// Subpackages:
//   - casc: Jenkins Configuration-as-Code generation from discovered agents
//   - cleaner: host-wide Docker resource cleanup with a disk usage summary
//   - discovery: agent container discovery by polling state and addresses
//   - keypair: SSH keypair generation for controller to agent authentication
//   - poll: bounded polling shared by every wait loop
//   - provisioner: the ordered provisioning run tying the above together
package svc
