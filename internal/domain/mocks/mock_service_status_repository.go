package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mailroom/mailroom/internal/domain"
)

// MockServiceStatusRepository is a mock of ServiceStatusRepository interface
type MockServiceStatusRepository struct {
	ctrl     *gomock.Controller
	recorder *MockServiceStatusRepositoryMockRecorder
}

// MockServiceStatusRepositoryMockRecorder is the mock recorder for MockServiceStatusRepository
type MockServiceStatusRepositoryMockRecorder struct {
	mock *MockServiceStatusRepository
}

// NewMockServiceStatusRepository creates a new mock instance
func NewMockServiceStatusRepository(ctrl *gomock.Controller) *MockServiceStatusRepository {
	mock := &MockServiceStatusRepository{ctrl: ctrl}
	mock.recorder = &MockServiceStatusRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockServiceStatusRepository) EXPECT() *MockServiceStatusRepositoryMockRecorder {
	return m.recorder
}

// Upsert mocks base method
func (m *MockServiceStatusRepository) Upsert(ctx context.Context, status *domain.ServiceStatus) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Upsert", ctx, status)
	ret0, _ := ret[0].(error)
	return ret0
}

// Upsert indicates an expected call of Upsert
func (mr *MockServiceStatusRepositoryMockRecorder) Upsert(ctx, status interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Upsert", reflect.TypeOf((*MockServiceStatusRepository)(nil).Upsert), ctx, status)
}

// List mocks base method
func (m *MockServiceStatusRepository) List(ctx context.Context) ([]*domain.ServiceStatus, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx)
	ret0, _ := ret[0].([]*domain.ServiceStatus)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockServiceStatusRepositoryMockRecorder) List(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockServiceStatusRepository)(nil).List), ctx)
}

// DeleteStale mocks base method
func (m *MockServiceStatusRepository) DeleteStale(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteStale", ctx, cutoff, limit)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteStale indicates an expected call of DeleteStale
func (mr *MockServiceStatusRepositoryMockRecorder) DeleteStale(ctx, cutoff, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteStale", reflect.TypeOf((*MockServiceStatusRepository)(nil).DeleteStale), ctx, cutoff, limit)
}
