package enforcer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/odskit/ksk-helper/model"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := m.Called(name, args)

	out, _ := callArgs.Get(0).([]byte)

	return out, callArgs.Error(1)
}

type mockEnforcer struct {
	mock.Mock
}

func (m *mockEnforcer) ListKeys(ctx context.Context, zone string) ([]KeyRow, error) {
	args := m.Called(zone)

	rows, _ := args.Get(0).([]KeyRow)

	return rows, args.Error(1)
}

func (m *mockEnforcer) ExportDS(ctx context.Context, zone string, state model.KeyState) ([]DSRow, error) {
	args := m.Called(zone, state)

	rows, _ := args.Get(0).([]DSRow)

	return rows, args.Error(1)
}
