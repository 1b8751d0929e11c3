// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"kinfmt.dev/pkg/kinfmt/internal/domain"
	m "kinfmt.dev/pkg/kinfmt/internal/model"
)

// MockWorkflow is a testify mock for domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow that asserts its expectations during
// test cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	w := &MockWorkflow{}
	w.Mock.Test(t)

	t.Cleanup(func() { w.AssertExpectations(t) })

	return w
}

// Format implements domain.Workflow.
func (w *MockWorkflow) Format(ctx context.Context, args domain.FormatArgs) error {
	ret := w.Called(ctx, args)

	return ret.Error(0)
}

// Resolve implements domain.Workflow.
func (w *MockWorkflow) Resolve(ctx context.Context, paths []m.Path) ([]m.Resolution, error) {
	ret := w.Called(ctx, paths)

	var resolutions []m.Resolution
	if ret.Get(0) != nil {
		resolutions = ret.Get(0).([]m.Resolution)
	}

	return resolutions, ret.Error(1)
}
