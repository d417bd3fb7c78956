package v1alpha1

import "time"

// Config is the complete jenkins-manager configuration.
type Config struct {
	Compose   Compose   `json:"compose"   mapstructure:"compose"`
	Agents    Agents    `json:"agents"    mapstructure:"agents"`
	Keygen    Keygen    `json:"keygen"    mapstructure:"keygen"`
	Discovery Discovery `json:"discovery" mapstructure:"discovery"`
	CasC      CasC      `json:"casc"      mapstructure:"casc"`
	Provision Provision `json:"provision" mapstructure:"provision"`
	Log       Log       `json:"log"       mapstructure:"log"`
}

// Compose locates the compose project and its services.
type Compose struct {
	// File is the path of the compose file.
	File string `json:"file" mapstructure:"file"`
	// Project is the compose project name. Empty lets docker compose derive it.
	Project string `json:"project,omitempty" mapstructure:"project"`
	// AgentService is detected from the compose file when empty.
	AgentService string `json:"agentService,omitempty" mapstructure:"agentService"`
	// ControllerService is detected from the compose file when empty.
	ControllerService string `json:"controllerService,omitempty" mapstructure:"controllerService"`
}

// Agents configures the agent fleet.
type Agents struct {
	Count int `json:"count" mapstructure:"count" jsonschema:"description=Number of agent containers to provision,minimum=0"`
}

// Discovery configures how agent containers are polled for state and address.
type Discovery struct {
	Attempts    int           `json:"attempts"    mapstructure:"attempts"    jsonschema:"minimum=1"`
	Interval    time.Duration `json:"interval"    mapstructure:"interval"`
	Multiplier  float64       `json:"multiplier"  mapstructure:"multiplier"  jsonschema:"minimum=1"`
	MaxInterval time.Duration `json:"maxInterval" mapstructure:"maxInterval"`
	Concurrency int           `json:"concurrency" mapstructure:"concurrency" jsonschema:"minimum=1"`
	OnTimeout   TimeoutPolicy `json:"onTimeout"   mapstructure:"onTimeout"`
}

// CasC configures generation of the Jenkins Configuration-as-Code file.
type CasC struct {
	Generator Generator `json:"generator" mapstructure:"generator"`
	// Template is the CasC template rendered by the template generator. A built-in
	// template is used when the file does not exist.
	Template string `json:"template" mapstructure:"template"`
	Output   string `json:"output"   mapstructure:"output"`
	// Command is the argv prefix of the exec generator; agent names and then agent
	// addresses are appended.
	Command []string `json:"command,omitempty" mapstructure:"command"`
}

// Provision bounds the whole provisioning run.
type Provision struct {
	// Timeout of zero disables the overall deadline.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	// Clean runs the cleaner before provisioning.
	Clean bool `json:"clean" mapstructure:"clean"`
}

// Log configures the debug log file.
type Log struct {
	// File is the debug log path. Empty disables file logging.
	File  string `json:"file"  mapstructure:"file"`
	Level string `json:"level" mapstructure:"level"`
}
