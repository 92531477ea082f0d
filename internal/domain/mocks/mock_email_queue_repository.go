package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mailroom/mailroom/internal/domain"
)

// MockEmailQueueRepository is a mock of EmailQueueRepository interface
type MockEmailQueueRepository struct {
	ctrl     *gomock.Controller
	recorder *MockEmailQueueRepositoryMockRecorder
}

// MockEmailQueueRepositoryMockRecorder is the mock recorder for MockEmailQueueRepository
type MockEmailQueueRepositoryMockRecorder struct {
	mock *MockEmailQueueRepository
}

// NewMockEmailQueueRepository creates a new mock instance
func NewMockEmailQueueRepository(ctrl *gomock.Controller) *MockEmailQueueRepository {
	mock := &MockEmailQueueRepository{ctrl: ctrl}
	mock.recorder = &MockEmailQueueRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockEmailQueueRepository) EXPECT() *MockEmailQueueRepositoryMockRecorder {
	return m.recorder
}

// Enqueue mocks base method
func (m *MockEmailQueueRepository) Enqueue(ctx context.Context, item *domain.QueueItem) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Enqueue", ctx, item)
	ret0, _ := ret[0].(error)
	return ret0
}

// Enqueue indicates an expected call of Enqueue
func (mr *MockEmailQueueRepositoryMockRecorder) Enqueue(ctx, item interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Enqueue", reflect.TypeOf((*MockEmailQueueRepository)(nil).Enqueue), ctx, item)
}

// BulkEnqueue mocks base method
func (m *MockEmailQueueRepository) BulkEnqueue(ctx context.Context, items []*domain.QueueItem) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BulkEnqueue", ctx, items)
	ret0, _ := ret[0].(error)
	return ret0
}

// BulkEnqueue indicates an expected call of BulkEnqueue
func (mr *MockEmailQueueRepositoryMockRecorder) BulkEnqueue(ctx, items interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BulkEnqueue", reflect.TypeOf((*MockEmailQueueRepository)(nil).BulkEnqueue), ctx, items)
}

// ClaimBatch mocks base method
func (m *MockEmailQueueRepository) ClaimBatch(ctx context.Context, batchSize int, workerID string) ([]*domain.QueueItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimBatch", ctx, batchSize, workerID)
	ret0, _ := ret[0].([]*domain.QueueItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimBatch indicates an expected call of ClaimBatch
func (mr *MockEmailQueueRepositoryMockRecorder) ClaimBatch(ctx, batchSize, workerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimBatch", reflect.TypeOf((*MockEmailQueueRepository)(nil).ClaimBatch), ctx, batchSize, workerID)
}

// ClaimDueScheduled mocks base method
func (m *MockEmailQueueRepository) ClaimDueScheduled(ctx context.Context, batchSize int, workerID string) ([]*domain.QueueItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimDueScheduled", ctx, batchSize, workerID)
	ret0, _ := ret[0].([]*domain.QueueItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ClaimDueScheduled indicates an expected call of ClaimDueScheduled
func (mr *MockEmailQueueRepositoryMockRecorder) ClaimDueScheduled(ctx, batchSize, workerID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimDueScheduled", reflect.TypeOf((*MockEmailQueueRepository)(nil).ClaimDueScheduled), ctx, batchSize, workerID)
}

// MarkSent mocks base method
func (m *MockEmailQueueRepository) MarkSent(ctx context.Context, queueID, workerID string, processingTimeMs int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkSent", ctx, queueID, workerID, processingTimeMs)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkSent indicates an expected call of MarkSent
func (mr *MockEmailQueueRepositoryMockRecorder) MarkSent(ctx, queueID, workerID, processingTimeMs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkSent", reflect.TypeOf((*MockEmailQueueRepository)(nil).MarkSent), ctx, queueID, workerID, processingTimeMs)
}

// MarkFailed mocks base method
func (m *MockEmailQueueRepository) MarkFailed(ctx context.Context, queueID, errorMessage string, shouldRetry bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkFailed", ctx, queueID, errorMessage, shouldRetry)
	ret0, _ := ret[0].(error)
	return ret0
}

// MarkFailed indicates an expected call of MarkFailed
func (mr *MockEmailQueueRepositoryMockRecorder) MarkFailed(ctx, queueID, errorMessage, shouldRetry interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkFailed", reflect.TypeOf((*MockEmailQueueRepository)(nil).MarkFailed), ctx, queueID, errorMessage, shouldRetry)
}

// Cancel mocks base method
func (m *MockEmailQueueRepository) Cancel(ctx context.Context, queueID string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Cancel", ctx, queueID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Cancel indicates an expected call of Cancel
func (mr *MockEmailQueueRepositoryMockRecorder) Cancel(ctx, queueID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cancel", reflect.TypeOf((*MockEmailQueueRepository)(nil).Cancel), ctx, queueID)
}

// UpdatePriority mocks base method
func (m *MockEmailQueueRepository) UpdatePriority(ctx context.Context, queueID string, priority domain.EmailPriority) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdatePriority", ctx, queueID, priority)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdatePriority indicates an expected call of UpdatePriority
func (mr *MockEmailQueueRepositoryMockRecorder) UpdatePriority(ctx, queueID, priority interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdatePriority", reflect.TypeOf((*MockEmailQueueRepository)(nil).UpdatePriority), ctx, queueID, priority)
}

// Reschedule mocks base method
func (m *MockEmailQueueRepository) Reschedule(ctx context.Context, queueID string, at time.Time) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reschedule", ctx, queueID, at)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Reschedule indicates an expected call of Reschedule
func (mr *MockEmailQueueRepositoryMockRecorder) Reschedule(ctx, queueID, at interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reschedule", reflect.TypeOf((*MockEmailQueueRepository)(nil).Reschedule), ctx, queueID, at)
}

// ResetStuck mocks base method
func (m *MockEmailQueueRepository) ResetStuck(ctx context.Context, threshold time.Duration) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResetStuck", ctx, threshold)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ResetStuck indicates an expected call of ResetStuck
func (mr *MockEmailQueueRepositoryMockRecorder) ResetStuck(ctx, threshold interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResetStuck", reflect.TypeOf((*MockEmailQueueRepository)(nil).ResetStuck), ctx, threshold)
}

// GetByID mocks base method
func (m *MockEmailQueueRepository) GetByID(ctx context.Context, queueID string) (*domain.QueueItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, queueID)
	ret0, _ := ret[0].(*domain.QueueItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockEmailQueueRepositoryMockRecorder) GetByID(ctx, queueID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockEmailQueueRepository)(nil).GetByID), ctx, queueID)
}

// GetBatch mocks base method
func (m *MockEmailQueueRepository) GetBatch(ctx context.Context, queueIDs []string) ([]*domain.QueueItem, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBatch", ctx, queueIDs)
	ret0, _ := ret[0].([]*domain.QueueItem)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBatch indicates an expected call of GetBatch
func (mr *MockEmailQueueRepositoryMockRecorder) GetBatch(ctx, queueIDs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBatch", reflect.TypeOf((*MockEmailQueueRepository)(nil).GetBatch), ctx, queueIDs)
}

// List mocks base method
func (m *MockEmailQueueRepository) List(ctx context.Context, filter domain.QueueFilter) ([]*domain.QueueItem, int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].([]*domain.QueueItem)
	ret1, _ := ret[1].(int64)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// List indicates an expected call of List
func (mr *MockEmailQueueRepositoryMockRecorder) List(ctx, filter interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockEmailQueueRepository)(nil).List), ctx, filter)
}

// Stats mocks base method
func (m *MockEmailQueueRepository) Stats(ctx context.Context) (*domain.QueueStats, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Stats", ctx)
	ret0, _ := ret[0].(*domain.QueueStats)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Stats indicates an expected call of Stats
func (mr *MockEmailQueueRepositoryMockRecorder) Stats(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Stats", reflect.TypeOf((*MockEmailQueueRepository)(nil).Stats), ctx)
}

// CountTotal mocks base method
func (m *MockEmailQueueRepository) CountTotal(ctx context.Context) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CountTotal", ctx)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CountTotal indicates an expected call of CountTotal
func (mr *MockEmailQueueRepositoryMockRecorder) CountTotal(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CountTotal", reflect.TypeOf((*MockEmailQueueRepository)(nil).CountTotal), ctx)
}
