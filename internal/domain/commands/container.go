package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewScanCommand); err != nil {
		return err
	}
	if err := container.Provide(func(cmd *ScanCommand) Scan { return cmd }); err != nil {
		return err
	}

	if err := container.Provide(NewDepsCommand); err != nil {
		return err
	}
	if err := container.Provide(func(cmd *DepsCommand) Deps { return cmd }); err != nil {
		return err
	}

	if err := container.Provide(NewInitCommand); err != nil {
		return err
	}
	if err := container.Provide(func(cmd *InitCommand) Init { return cmd }); err != nil {
		return err
	}

	if err := container.Provide(NewFixCommand); err != nil {
		return err
	}
	if err := container.Provide(func(cmd *FixCommand) Fix { return cmd }); err != nil {
		return err
	}

	if err := container.Provide(NewVerifyCommand); err != nil {
		return err
	}
	if err := container.Provide(func(cmd *VerifyCommand) Verify { return cmd }); err != nil {
		return err
	}

	if err := container.Provide(NewMigrateCommand); err != nil {
		return err
	}
	if err := container.Provide(func(cmd *MigrateCommand) Migrate { return cmd }); err != nil {
		return err
	}

	return nil
}
