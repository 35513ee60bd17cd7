package catalog

import (
	"fmt"

	"github.com/decker502/tinyspace/pkg/types"
)

// NoSchematicError 向没有图纸的建筑请求图纸
type NoSchematicError struct {
	Kind types.ThingKind
}

func (e *NoSchematicError) Error() string {
	return fmt.Sprintf("no schematic for %v", e.Kind)
}
