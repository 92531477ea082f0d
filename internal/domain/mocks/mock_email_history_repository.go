package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mailroom/mailroom/internal/domain"
)

// MockEmailHistoryRepository is a mock of EmailHistoryRepository interface
type MockEmailHistoryRepository struct {
	ctrl     *gomock.Controller
	recorder *MockEmailHistoryRepositoryMockRecorder
}

// MockEmailHistoryRepositoryMockRecorder is the mock recorder for MockEmailHistoryRepository
type MockEmailHistoryRepositoryMockRecorder struct {
	mock *MockEmailHistoryRepository
}

// NewMockEmailHistoryRepository creates a new mock instance
func NewMockEmailHistoryRepository(ctrl *gomock.Controller) *MockEmailHistoryRepository {
	mock := &MockEmailHistoryRepository{ctrl: ctrl}
	mock.recorder = &MockEmailHistoryRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockEmailHistoryRepository) EXPECT() *MockEmailHistoryRepositoryMockRecorder {
	return m.recorder
}

// GetByQueueID mocks base method
func (m *MockEmailHistoryRepository) GetByQueueID(ctx context.Context, queueID string) (*domain.EmailHistory, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByQueueID", ctx, queueID)
	ret0, _ := ret[0].(*domain.EmailHistory)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByQueueID indicates an expected call of GetByQueueID
func (mr *MockEmailHistoryRepositoryMockRecorder) GetByQueueID(ctx, queueID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByQueueID", reflect.TypeOf((*MockEmailHistoryRepository)(nil).GetByQueueID), ctx, queueID)
}

// List mocks base method
func (m *MockEmailHistoryRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]*domain.EmailHistory, int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].([]*domain.EmailHistory)
	ret1, _ := ret[1].(int64)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// List indicates an expected call of List
func (mr *MockEmailHistoryRepositoryMockRecorder) List(ctx, filter interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockEmailHistoryRepository)(nil).List), ctx, filter)
}

// Stats mocks base method
func (m *MockEmailHistoryRepository) Stats(ctx context.Context, from, to time.Time) (*domain.DeliveryStats, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Stats", ctx, from, to)
	ret0, _ := ret[0].(*domain.DeliveryStats)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Stats indicates an expected call of Stats
func (mr *MockEmailHistoryRepositoryMockRecorder) Stats(ctx, from, to interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Stats", reflect.TypeOf((*MockEmailHistoryRepository)(nil).Stats), ctx, from, to)
}

// ListOlderThan mocks base method
func (m *MockEmailHistoryRepository) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*domain.EmailHistory, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListOlderThan", ctx, cutoff, limit)
	ret0, _ := ret[0].([]*domain.EmailHistory)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListOlderThan indicates an expected call of ListOlderThan
func (mr *MockEmailHistoryRepositoryMockRecorder) ListOlderThan(ctx, cutoff, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListOlderThan", reflect.TypeOf((*MockEmailHistoryRepository)(nil).ListOlderThan), ctx, cutoff, limit)
}

// DeleteByIDs mocks base method
func (m *MockEmailHistoryRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteByIDs", ctx, ids)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteByIDs indicates an expected call of DeleteByIDs
func (mr *MockEmailHistoryRepositoryMockRecorder) DeleteByIDs(ctx, ids interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteByIDs", reflect.TypeOf((*MockEmailHistoryRepository)(nil).DeleteByIDs), ctx, ids)
}

// DeleteOlderThan mocks base method
func (m *MockEmailHistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteOlderThan", ctx, cutoff, limit)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteOlderThan indicates an expected call of DeleteOlderThan
func (mr *MockEmailHistoryRepositoryMockRecorder) DeleteOlderThan(ctx, cutoff, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteOlderThan", reflect.TypeOf((*MockEmailHistoryRepository)(nil).DeleteOlderThan), ctx, cutoff, limit)
}
