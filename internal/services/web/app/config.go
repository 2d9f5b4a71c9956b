package app

import (
	"io/fs"

	module "github.com/louisbranch/galien/internal/services/web/module"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	Dependencies module.Dependencies
	Modules      []module.Module
	// StaticFS serves /static/ when set.
	StaticFS fs.FS
}
