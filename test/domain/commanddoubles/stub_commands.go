//go:build integration || unit || test

// Package commanddoubles provides stub implementations of the command
// interfaces for pipeline tests.
package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/bazelize/internal/domain/commands"
	"github.com/rios0rios0/bazelize/internal/domain/entities"
)

// StubScanCommand is a stub implementation of commands.Scan.
type StubScanCommand struct {
	ExecuteCallCount int
	Result           *commands.ScanResult
	ExecuteErr       error
	LastOpts         commands.ScanOptions
}

var _ commands.Scan = (*StubScanCommand)(nil)

func (s *StubScanCommand) Execute(
	_ context.Context, _ *entities.Settings, opts commands.ScanOptions,
) (*commands.ScanResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &commands.ScanResult{
		Project: &entities.MavenProject{},
		Index:   &entities.SourceIndex{},
	}, nil
}

// StubDepsCommand is a stub implementation of commands.Deps.
type StubDepsCommand struct {
	ExecuteCallCount int
	Pins             *entities.PinFile
	ExecuteErr       error
	LastOpts         commands.DepsOptions
}

var _ commands.Deps = (*StubDepsCommand)(nil)

func (s *StubDepsCommand) Execute(
	_ context.Context, _ *entities.Settings, opts commands.DepsOptions,
) (*entities.PinFile, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Pins != nil {
		return s.Pins, nil
	}
	return &entities.PinFile{}, nil
}

// StubInitCommand is a stub implementation of commands.Init.
type StubInitCommand struct {
	ExecuteCallCount int
	Result           *commands.InitResult
	ExecuteErr       error
	LastOpts         commands.InitOptions
}

var _ commands.Init = (*StubInitCommand)(nil)

func (s *StubInitCommand) Execute(
	_ context.Context, _ *entities.Settings, opts commands.InitOptions,
) (*commands.InitResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &commands.InitResult{}, nil
}

// StubFixCommand is a stub implementation of commands.Fix.
type StubFixCommand struct {
	ExecuteCallCount int
	Result           *commands.FixResult
	ExecuteErr       error
	LastOpts         commands.FixOptions
}

var _ commands.Fix = (*StubFixCommand)(nil)

func (s *StubFixCommand) Execute(
	_ context.Context, _ *entities.Settings, opts commands.FixOptions,
) (*commands.FixResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &commands.FixResult{}, nil
}

// StubMigrateCommand is a stub implementation of commands.Migrate.
type StubMigrateCommand struct {
	ExecuteCallCount int
	Report           *entities.MigrationReport
	ExecuteErr       error
	LastOpts         commands.MigrateOptions
}

var _ commands.Migrate = (*StubMigrateCommand)(nil)

func (s *StubMigrateCommand) Execute(
	_ context.Context, _ *entities.Settings, opts commands.MigrateOptions,
) (*entities.MigrationReport, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Report != nil {
		return s.Report, nil
	}
	return &entities.MigrationReport{}, nil
}

// StubVerifyCommand is a stub implementation of commands.Verify.
type StubVerifyCommand struct {
	ExecuteCallCount int
	Result           *commands.VerifyResult
	ExecuteErr       error
	LastOpts         commands.VerifyOptions
}

var _ commands.Verify = (*StubVerifyCommand)(nil)

func (s *StubVerifyCommand) Execute(
	_ context.Context, _ *entities.Settings, opts commands.VerifyOptions,
) (*commands.VerifyResult, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &commands.VerifyResult{BuildPassed: true, TestsPassed: true}, nil
}
