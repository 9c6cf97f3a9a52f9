package main

import (
	"github.com/rios0rios0/bazelize/internal"
	"github.com/rios0rios0/bazelize/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func injectAppContext() *internal.AppInternal {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectMigrateController() *controllers.MigrateController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var migrateController *controllers.MigrateController
	if err := container.Invoke(func(mc *controllers.MigrateController) {
		migrateController = mc
	}); err != nil {
		panic(err)
	}

	return migrateController
}
