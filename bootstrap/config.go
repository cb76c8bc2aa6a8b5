package bootstrap

import (
	"github.com/kbukum/oasisdoc/config"
)

// Config is the constraint for application config types. Any struct
// embedding config.ServiceConfig satisfies it through promoted methods,
// including overridden ApplyDefaults/Validate on the outer type.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
