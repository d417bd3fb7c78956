// Package apis provides API type definitions for jenkins-manager.
//
//   - manager: the jenkins-manager configuration file schema, defaults and validation
package apis
