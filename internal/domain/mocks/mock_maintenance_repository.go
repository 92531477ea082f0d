package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"
)

// MockMaintenanceRepository is a mock of MaintenanceRepository interface
type MockMaintenanceRepository struct {
	ctrl     *gomock.Controller
	recorder *MockMaintenanceRepositoryMockRecorder
}

// MockMaintenanceRepositoryMockRecorder is the mock recorder for MockMaintenanceRepository
type MockMaintenanceRepositoryMockRecorder struct {
	mock *MockMaintenanceRepository
}

// NewMockMaintenanceRepository creates a new mock instance
func NewMockMaintenanceRepository(ctrl *gomock.Controller) *MockMaintenanceRepository {
	mock := &MockMaintenanceRepository{ctrl: ctrl}
	mock.recorder = &MockMaintenanceRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockMaintenanceRepository) EXPECT() *MockMaintenanceRepositoryMockRecorder {
	return m.recorder
}

// DeleteOrphanedAttachments mocks base method
func (m *MockMaintenanceRepository) DeleteOrphanedAttachments(ctx context.Context, limit int) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteOrphanedAttachments", ctx, limit)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteOrphanedAttachments indicates an expected call of DeleteOrphanedAttachments
func (mr *MockMaintenanceRepositoryMockRecorder) DeleteOrphanedAttachments(ctx, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteOrphanedAttachments", reflect.TypeOf((*MockMaintenanceRepository)(nil).DeleteOrphanedAttachments), ctx, limit)
}

// DeleteAttachmentsOlderThan mocks base method
func (m *MockMaintenanceRepository) DeleteAttachmentsOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteAttachmentsOlderThan", ctx, cutoff, limit)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteAttachmentsOlderThan indicates an expected call of DeleteAttachmentsOlderThan
func (mr *MockMaintenanceRepositoryMockRecorder) DeleteAttachmentsOlderThan(ctx, cutoff, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteAttachmentsOlderThan", reflect.TypeOf((*MockMaintenanceRepository)(nil).DeleteAttachmentsOlderThan), ctx, cutoff, limit)
}

// DeleteTerminalQueueItems mocks base method
func (m *MockMaintenanceRepository) DeleteTerminalQueueItems(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteTerminalQueueItems", ctx, cutoff, limit)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteTerminalQueueItems indicates an expected call of DeleteTerminalQueueItems
func (mr *MockMaintenanceRepositoryMockRecorder) DeleteTerminalQueueItems(ctx, cutoff, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteTerminalQueueItems", reflect.TypeOf((*MockMaintenanceRepository)(nil).DeleteTerminalQueueItems), ctx, cutoff, limit)
}

// DatabaseSize mocks base method
func (m *MockMaintenanceRepository) DatabaseSize(ctx context.Context) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DatabaseSize", ctx)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DatabaseSize indicates an expected call of DatabaseSize
func (mr *MockMaintenanceRepositoryMockRecorder) DatabaseSize(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DatabaseSize", reflect.TypeOf((*MockMaintenanceRepository)(nil).DatabaseSize), ctx)
}

// Analyze mocks base method
func (m *MockMaintenanceRepository) Analyze(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Analyze", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// Analyze indicates an expected call of Analyze
func (mr *MockMaintenanceRepositoryMockRecorder) Analyze(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Analyze", reflect.TypeOf((*MockMaintenanceRepository)(nil).Analyze), ctx)
}

// Reindex mocks base method
func (m *MockMaintenanceRepository) Reindex(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reindex", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// Reindex indicates an expected call of Reindex
func (mr *MockMaintenanceRepositoryMockRecorder) Reindex(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reindex", reflect.TypeOf((*MockMaintenanceRepository)(nil).Reindex), ctx)
}

// MockBackupRunner is a mock of BackupRunner interface
type MockBackupRunner struct {
	ctrl     *gomock.Controller
	recorder *MockBackupRunnerMockRecorder
}

// MockBackupRunnerMockRecorder is the mock recorder for MockBackupRunner
type MockBackupRunnerMockRecorder struct {
	mock *MockBackupRunner
}

// NewMockBackupRunner creates a new mock instance
func NewMockBackupRunner(ctrl *gomock.Controller) *MockBackupRunner {
	mock := &MockBackupRunner{ctrl: ctrl}
	mock.recorder = &MockBackupRunnerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockBackupRunner) EXPECT() *MockBackupRunnerMockRecorder {
	return m.recorder
}

// Run mocks base method
func (m *MockBackupRunner) Run(ctx context.Context, dir string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Run", ctx, dir)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Run indicates an expected call of Run
func (mr *MockBackupRunnerMockRecorder) Run(ctx, dir interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Run", reflect.TypeOf((*MockBackupRunner)(nil).Run), ctx, dir)
}
