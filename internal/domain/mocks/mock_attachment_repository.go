package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"

	"github.com/mailroom/mailroom/internal/domain"
)

// MockAttachmentRepository is a mock of AttachmentRepository interface
type MockAttachmentRepository struct {
	ctrl     *gomock.Controller
	recorder *MockAttachmentRepositoryMockRecorder
}

// MockAttachmentRepositoryMockRecorder is the mock recorder for MockAttachmentRepository
type MockAttachmentRepositoryMockRecorder struct {
	mock *MockAttachmentRepository
}

// NewMockAttachmentRepository creates a new mock instance
func NewMockAttachmentRepository(ctrl *gomock.Controller) *MockAttachmentRepository {
	mock := &MockAttachmentRepository{ctrl: ctrl}
	mock.recorder = &MockAttachmentRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockAttachmentRepository) EXPECT() *MockAttachmentRepositoryMockRecorder {
	return m.recorder
}

// InsertForQueueItem mocks base method
func (m *MockAttachmentRepository) InsertForQueueItem(ctx context.Context, queueID string, attachments []domain.AttachmentData) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "InsertForQueueItem", ctx, queueID, attachments)
	ret0, _ := ret[0].(error)
	return ret0
}

// InsertForQueueItem indicates an expected call of InsertForQueueItem
func (mr *MockAttachmentRepositoryMockRecorder) InsertForQueueItem(ctx, queueID, attachments interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "InsertForQueueItem", reflect.TypeOf((*MockAttachmentRepository)(nil).InsertForQueueItem), ctx, queueID, attachments)
}

// ListByQueueID mocks base method
func (m *MockAttachmentRepository) ListByQueueID(ctx context.Context, queueID string) ([]*domain.EmailAttachment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByQueueID", ctx, queueID)
	ret0, _ := ret[0].([]*domain.EmailAttachment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByQueueID indicates an expected call of ListByQueueID
func (mr *MockAttachmentRepositoryMockRecorder) ListByQueueID(ctx, queueID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByQueueID", reflect.TypeOf((*MockAttachmentRepository)(nil).ListByQueueID), ctx, queueID)
}
