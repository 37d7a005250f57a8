package implementations

import "github.com/annel0/mmo-blockarea/internal/world/block"

// AirBehavior реализует поведение воздуха
type AirBehavior struct {
	block.Base
}

// NewAirBehavior создаёт поведение воздуха
func NewAirBehavior() *AirBehavior {
	return &AirBehavior{Base: block.Base{Type: block.Air, TypeName: "Air"}}
}
