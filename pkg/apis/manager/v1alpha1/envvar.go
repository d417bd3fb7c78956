package v1alpha1

import "github.com/devantler-tech/jenkins-manager/pkg/utils/envvar"

// ExpandEnvVars expands ${VAR} placeholders in every path and command field of c.
func (c *Config) ExpandEnvVars() {
	c.Compose.File = envvar.Expand(c.Compose.File)
	c.Compose.Project = envvar.Expand(c.Compose.Project)
	c.CasC.Template = envvar.Expand(c.CasC.Template)
	c.CasC.Output = envvar.Expand(c.CasC.Output)
	c.CasC.Command = envvar.ExpandAll(c.CasC.Command)
	c.Log.File = envvar.Expand(c.Log.File)
}
