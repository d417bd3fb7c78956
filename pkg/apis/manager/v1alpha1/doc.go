// Package v1alpha1 defines the jenkins-manager configuration schema, its defaults and validation.
package v1alpha1
