package app

import (
	"github.com/specialistvlad/plugbuild/internal/registry"
	"github.com/specialistvlad/plugbuild/modules/env_vars"
	"github.com/specialistvlad/plugbuild/modules/group"
	"github.com/specialistvlad/plugbuild/modules/http_client"
	"github.com/specialistvlad/plugbuild/modules/print"
	"github.com/specialistvlad/plugbuild/modules/socketio_client"
)

// coreModules is the definitive list of all modules that are compiled into
// the plugbuild binary.
var coreModules = []registry.Module{
	&env_vars.Module{},
	&group.Module{},
	&http_client.Module{},
	&print.Module{},
	&socketio_client.Module{},
}
