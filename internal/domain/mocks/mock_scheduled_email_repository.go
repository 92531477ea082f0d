package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mailroom/mailroom/internal/domain"
)

// MockScheduledEmailRepository is a mock of ScheduledEmailRepository interface
type MockScheduledEmailRepository struct {
	ctrl     *gomock.Controller
	recorder *MockScheduledEmailRepositoryMockRecorder
}

// MockScheduledEmailRepositoryMockRecorder is the mock recorder for MockScheduledEmailRepository
type MockScheduledEmailRepositoryMockRecorder struct {
	mock *MockScheduledEmailRepository
}

// NewMockScheduledEmailRepository creates a new mock instance
func NewMockScheduledEmailRepository(ctrl *gomock.Controller) *MockScheduledEmailRepository {
	mock := &MockScheduledEmailRepository{ctrl: ctrl}
	mock.recorder = &MockScheduledEmailRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockScheduledEmailRepository) EXPECT() *MockScheduledEmailRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method
func (m *MockScheduledEmailRepository) Create(ctx context.Context, email *domain.ScheduledEmail) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, email)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create
func (mr *MockScheduledEmailRepositoryMockRecorder) Create(ctx, email interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockScheduledEmailRepository)(nil).Create), ctx, email)
}

// Update mocks base method
func (m *MockScheduledEmailRepository) Update(ctx context.Context, email *domain.ScheduledEmail) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, email)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update
func (mr *MockScheduledEmailRepositoryMockRecorder) Update(ctx, email interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockScheduledEmailRepository)(nil).Update), ctx, email)
}

// GetByID mocks base method
func (m *MockScheduledEmailRepository) GetByID(ctx context.Context, id int64) (*domain.ScheduledEmail, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.ScheduledEmail)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockScheduledEmailRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockScheduledEmailRepository)(nil).GetByID), ctx, id)
}

// GetDue mocks base method
func (m *MockScheduledEmailRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*domain.ScheduledEmail, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDue", ctx, now, limit)
	ret0, _ := ret[0].([]*domain.ScheduledEmail)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetDue indicates an expected call of GetDue
func (mr *MockScheduledEmailRepositoryMockRecorder) GetDue(ctx, now, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDue", reflect.TypeOf((*MockScheduledEmailRepository)(nil).GetDue), ctx, now, limit)
}

// ListInRange mocks base method
func (m *MockScheduledEmailRepository) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.ScheduledEmail, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListInRange", ctx, from, to)
	ret0, _ := ret[0].([]*domain.ScheduledEmail)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListInRange indicates an expected call of ListInRange
func (mr *MockScheduledEmailRepositoryMockRecorder) ListInRange(ctx, from, to interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListInRange", reflect.TypeOf((*MockScheduledEmailRepository)(nil).ListInRange), ctx, from, to)
}

// Deactivate mocks base method
func (m *MockScheduledEmailRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Deactivate", ctx, id)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Deactivate indicates an expected call of Deactivate
func (mr *MockScheduledEmailRepositoryMockRecorder) Deactivate(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deactivate", reflect.TypeOf((*MockScheduledEmailRepository)(nil).Deactivate), ctx, id)
}

// Reschedule mocks base method
func (m *MockScheduledEmailRepository) Reschedule(ctx context.Context, id int64, at time.Time) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reschedule", ctx, id, at)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Reschedule indicates an expected call of Reschedule
func (mr *MockScheduledEmailRepositoryMockRecorder) Reschedule(ctx, id, at interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reschedule", reflect.TypeOf((*MockScheduledEmailRepository)(nil).Reschedule), ctx, id, at)
}

// DeleteOld mocks base method
func (m *MockScheduledEmailRepository) DeleteOld(ctx context.Context, olderThan time.Time, limit int) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteOld", ctx, olderThan, limit)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DeleteOld indicates an expected call of DeleteOld
func (mr *MockScheduledEmailRepositoryMockRecorder) DeleteOld(ctx, olderThan, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteOld", reflect.TypeOf((*MockScheduledEmailRepository)(nil).DeleteOld), ctx, olderThan, limit)
}
