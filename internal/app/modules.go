package app

import (
	"github.com/vk/shadegrid/internal/registry"
	"github.com/vk/shadegrid/nodes/audio"
	"github.com/vk/shadegrid/nodes/color"
	"github.com/vk/shadegrid/nodes/mathx"
	"github.com/vk/shadegrid/nodes/output"
	"github.com/vk/shadegrid/nodes/source"
	"github.com/vk/shadegrid/nodes/transform"
)

// coreModules is the definitive list of all node catalogs that are compiled
// into the shadegrid binary.
var coreModules = []registry.Module{
	&source.Module{},
	&mathx.Module{},
	&color.Module{},
	&transform.Module{},
	&audio.Module{},
	&output.Module{},
}
