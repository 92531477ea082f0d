package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mailroom/mailroom/internal/domain"
)

// MockProcessingLogRepository is a mock of ProcessingLogRepository interface
type MockProcessingLogRepository struct {
	ctrl     *gomock.Controller
	recorder *MockProcessingLogRepositoryMockRecorder
}

// MockProcessingLogRepositoryMockRecorder is the mock recorder for MockProcessingLogRepository
type MockProcessingLogRepositoryMockRecorder struct {
	mock *MockProcessingLogRepository
}

// NewMockProcessingLogRepository creates a new mock instance
func NewMockProcessingLogRepository(ctrl *gomock.Controller) *MockProcessingLogRepository {
	mock := &MockProcessingLogRepository{ctrl: ctrl}
	mock.recorder = &MockProcessingLogRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockProcessingLogRepository) EXPECT() *MockProcessingLogRepositoryMockRecorder {
	return m.recorder
}

// Insert mocks base method
func (m *MockProcessingLogRepository) Insert(ctx context.Context, entry *domain.ProcessingLog) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Insert", ctx, entry)
	ret0, _ := ret[0].(error)
	return ret0
}

// Insert indicates an expected call of Insert
func (mr *MockProcessingLogRepositoryMockRecorder) Insert(ctx, entry interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Insert", reflect.TypeOf((*MockProcessingLogRepository)(nil).Insert), ctx, entry)
}

// ListByQueueID mocks base method
func (m *MockProcessingLogRepository) ListByQueueID(ctx context.Context, queueID string) ([]*domain.ProcessingLog, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByQueueID", ctx, queueID)
	ret0, _ := ret[0].([]*domain.ProcessingLog)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByQueueID indicates an expected call of ListByQueueID
func (mr *MockProcessingLogRepositoryMockRecorder) ListByQueueID(ctx, queueID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByQueueID", reflect.TypeOf((*MockProcessingLogRepository)(nil).ListByQueueID), ctx, queueID)
}

// DeleteOlderThan mocks base method
func (m *MockProcessingLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteOlderThan", ctx, cutoff, limit)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteOlderThan indicates an expected call of DeleteOlderThan
func (mr *MockProcessingLogRepositoryMockRecorder) DeleteOlderThan(ctx, cutoff, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteOlderThan", reflect.TypeOf((*MockProcessingLogRepository)(nil).DeleteOlderThan), ctx, cutoff, limit)
}
