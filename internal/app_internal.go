package internal

import (
	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// AppInternal holds the wired application graph handed to the CLI layer.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates a new AppInternal.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered controllers in mount order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
