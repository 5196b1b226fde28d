// Package instance models one running deployment of the package and
// validates its observable state against the intended mode.
package instance

import (
	"github.com/google/uuid"

	"packtest/internal/mode"
)

// projectPrefix namespaces the service group of one instance so independent
// instances can run side by side.
const projectPrefix = "clp-package-"

// Instance identifies one running deployment of the package.
type Instance struct {
	// ID uniquely identifies this deployment.
	ID string

	// Mode is the intended operating mode.
	Mode mode.Descriptor

	// SharedConfigPath is the live configuration file the running package
	// writes, used for the mode-signature check.
	SharedConfigPath string
}

// New creates an Instance for the given mode with a fresh unique ID.
func New(m mode.Descriptor, sharedConfigPath string) *Instance {
	return &Instance{
		ID:               uuid.NewString(),
		Mode:             m,
		SharedConfigPath: sharedConfigPath,
	}
}

// ProjectName returns the service-group identifier for this instance.
func (i *Instance) ProjectName() string {
	return projectPrefix + i.ID
}
