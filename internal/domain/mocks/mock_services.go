package mocks

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/mailroom/mailroom/internal/domain"
)

// MockQueueService is a mock of QueueService interface
type MockQueueService struct {
	ctrl     *gomock.Controller
	recorder *MockQueueServiceMockRecorder
}

// MockQueueServiceMockRecorder is the mock recorder for MockQueueService
type MockQueueServiceMockRecorder struct {
	mock *MockQueueService
}

// NewMockQueueService creates a new mock instance
func NewMockQueueService(ctrl *gomock.Controller) *MockQueueService {
	mock := &MockQueueService{ctrl: ctrl}
	mock.recorder = &MockQueueServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockQueueService) EXPECT() *MockQueueServiceMockRecorder {
	return m.recorder
}

// Enqueue mocks base method
func (m *MockQueueService) Enqueue(ctx context.Context, req *domain.EnqueueRequest) (*domain.EnqueueResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Enqueue", ctx, req)
	ret0, _ := ret[0].(*domain.EnqueueResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Enqueue indicates an expected call of Enqueue
func (mr *MockQueueServiceMockRecorder) Enqueue(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Enqueue", reflect.TypeOf((*MockQueueService)(nil).Enqueue), ctx, req)
}

// EnqueueWithTemplate mocks base method
func (m *MockQueueService) EnqueueWithTemplate(ctx context.Context, req *domain.EnqueueRequest) (*domain.EnqueueResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnqueueWithTemplate", ctx, req)
	ret0, _ := ret[0].(*domain.EnqueueResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// EnqueueWithTemplate indicates an expected call of EnqueueWithTemplate
func (mr *MockQueueServiceMockRecorder) EnqueueWithTemplate(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnqueueWithTemplate", reflect.TypeOf((*MockQueueService)(nil).EnqueueWithTemplate), ctx, req)
}

// BulkEnqueue mocks base method
func (m *MockQueueService) BulkEnqueue(ctx context.Context, reqs []*domain.EnqueueRequest) (*domain.BulkEnqueueResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BulkEnqueue", ctx, reqs)
	ret0, _ := ret[0].(*domain.BulkEnqueueResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// BulkEnqueue indicates an expected call of BulkEnqueue
func (mr *MockQueueServiceMockRecorder) BulkEnqueue(ctx, reqs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BulkEnqueue", reflect.TypeOf((*MockQueueService)(nil).BulkEnqueue), ctx, reqs)
}

// GetStatus mocks base method
func (m *MockQueueService) GetStatus(ctx context.Context, queueID string) (*domain.EmailStatusResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStatus", ctx, queueID)
	ret0, _ := ret[0].(*domain.EmailStatusResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetStatus indicates an expected call of GetStatus
func (mr *MockQueueServiceMockRecorder) GetStatus(ctx, queueID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStatus", reflect.TypeOf((*MockQueueService)(nil).GetStatus), ctx, queueID)
}

// GetStatusBatch mocks base method
func (m *MockQueueService) GetStatusBatch(ctx context.Context, queueIDs []string) ([]*domain.EmailStatusResponse, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStatusBatch", ctx, queueIDs)
	ret0, _ := ret[0].([]*domain.EmailStatusResponse)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetStatusBatch indicates an expected call of GetStatusBatch
func (mr *MockQueueServiceMockRecorder) GetStatusBatch(ctx, queueIDs interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStatusBatch", reflect.TypeOf((*MockQueueService)(nil).GetStatusBatch), ctx, queueIDs)
}

// Attachments mocks base method
func (m *MockQueueService) Attachments(ctx context.Context, queueID string) ([]*domain.EmailAttachment, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Attachments", ctx, queueID)
	ret0, _ := ret[0].([]*domain.EmailAttachment)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Attachments indicates an expected call of Attachments
func (mr *MockQueueServiceMockRecorder) Attachments(ctx, queueID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Attachments", reflect.TypeOf((*MockQueueService)(nil).Attachments), ctx, queueID)
}

// Cancel mocks base method
func (m *MockQueueService) Cancel(ctx context.Context, queueID string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Cancel", ctx, queueID)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Cancel indicates an expected call of Cancel
func (mr *MockQueueServiceMockRecorder) Cancel(ctx, queueID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cancel", reflect.TypeOf((*MockQueueService)(nil).Cancel), ctx, queueID)
}

// UpdatePriority mocks base method
func (m *MockQueueService) UpdatePriority(ctx context.Context, queueID string, priority domain.EmailPriority) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdatePriority", ctx, queueID, priority)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdatePriority indicates an expected call of UpdatePriority
func (mr *MockQueueServiceMockRecorder) UpdatePriority(ctx, queueID, priority interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdatePriority", reflect.TypeOf((*MockQueueService)(nil).UpdatePriority), ctx, queueID, priority)
}

// Reschedule mocks base method
func (m *MockQueueService) Reschedule(ctx context.Context, queueID string, at time.Time) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reschedule", ctx, queueID, at)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Reschedule indicates an expected call of Reschedule
func (mr *MockQueueServiceMockRecorder) Reschedule(ctx, queueID, at interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reschedule", reflect.TypeOf((*MockQueueService)(nil).Reschedule), ctx, queueID, at)
}

// List mocks base method
func (m *MockQueueService) List(ctx context.Context, filter domain.QueueFilter) ([]*domain.QueueItem, int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, filter)
	ret0, _ := ret[0].([]*domain.QueueItem)
	ret1, _ := ret[1].(int64)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// List indicates an expected call of List
func (mr *MockQueueServiceMockRecorder) List(ctx, filter interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockQueueService)(nil).List), ctx, filter)
}

// Statistics mocks base method
func (m *MockQueueService) Statistics(ctx context.Context, from, to time.Time) (*domain.QueueStatistics, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Statistics", ctx, from, to)
	ret0, _ := ret[0].(*domain.QueueStatistics)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Statistics indicates an expected call of Statistics
func (mr *MockQueueServiceMockRecorder) Statistics(ctx, from, to interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Statistics", reflect.TypeOf((*MockQueueService)(nil).Statistics), ctx, from, to)
}

// MockTemplateService is a mock of TemplateService interface
type MockTemplateService struct {
	ctrl     *gomock.Controller
	recorder *MockTemplateServiceMockRecorder
}

// MockTemplateServiceMockRecorder is the mock recorder for MockTemplateService
type MockTemplateServiceMockRecorder struct {
	mock *MockTemplateService
}

// NewMockTemplateService creates a new mock instance
func NewMockTemplateService(ctrl *gomock.Controller) *MockTemplateService {
	mock := &MockTemplateService{ctrl: ctrl}
	mock.recorder = &MockTemplateServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockTemplateService) EXPECT() *MockTemplateServiceMockRecorder {
	return m.recorder
}

// Create mocks base method
func (m *MockTemplateService) Create(ctx context.Context, template *domain.EmailTemplate) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, template)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create
func (mr *MockTemplateServiceMockRecorder) Create(ctx, template interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockTemplateService)(nil).Create), ctx, template)
}

// Update mocks base method
func (m *MockTemplateService) Update(ctx context.Context, template *domain.EmailTemplate) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Update", ctx, template)
	ret0, _ := ret[0].(error)
	return ret0
}

// Update indicates an expected call of Update
func (mr *MockTemplateServiceMockRecorder) Update(ctx, template interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Update", reflect.TypeOf((*MockTemplateService)(nil).Update), ctx, template)
}

// GetByID mocks base method
func (m *MockTemplateService) GetByID(ctx context.Context, id int64) (*domain.EmailTemplate, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.EmailTemplate)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID
func (mr *MockTemplateServiceMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockTemplateService)(nil).GetByID), ctx, id)
}

// GetByName mocks base method
func (m *MockTemplateService) GetByName(ctx context.Context, name string) (*domain.EmailTemplate, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByName", ctx, name)
	ret0, _ := ret[0].(*domain.EmailTemplate)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByName indicates an expected call of GetByName
func (mr *MockTemplateServiceMockRecorder) GetByName(ctx, name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByName", reflect.TypeOf((*MockTemplateService)(nil).GetByName), ctx, name)
}

// List mocks base method
func (m *MockTemplateService) List(ctx context.Context, category string, activeOnly bool) ([]*domain.EmailTemplate, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, category, activeOnly)
	ret0, _ := ret[0].([]*domain.EmailTemplate)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List
func (mr *MockTemplateServiceMockRecorder) List(ctx, category, activeOnly interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockTemplateService)(nil).List), ctx, category, activeOnly)
}

// Delete mocks base method
func (m *MockTemplateService) Delete(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Delete indicates an expected call of Delete
func (mr *MockTemplateServiceMockRecorder) Delete(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockTemplateService)(nil).Delete), ctx, id)
}

// Process mocks base method
func (m *MockTemplateService) Process(ctx context.Context, templateID int64, values map[string]string) (*domain.TemplateProcessResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Process", ctx, templateID, values)
	ret0, _ := ret[0].(*domain.TemplateProcessResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Process indicates an expected call of Process
func (mr *MockTemplateServiceMockRecorder) Process(ctx, templateID, values interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Process", reflect.TypeOf((*MockTemplateService)(nil).Process), ctx, templateID, values)
}

// Validate mocks base method
func (m *MockTemplateService) Validate(subject, body string) *domain.TemplateValidationResult {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Validate", subject, body)
	ret0, _ := ret[0].(*domain.TemplateValidationResult)
	return ret0
}

// Validate indicates an expected call of Validate
func (mr *MockTemplateServiceMockRecorder) Validate(subject, body interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Validate", reflect.TypeOf((*MockTemplateService)(nil).Validate), subject, body)
}

// Clone mocks base method
func (m *MockTemplateService) Clone(ctx context.Context, id int64, newName string) (*domain.EmailTemplate, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Clone", ctx, id, newName)
	ret0, _ := ret[0].(*domain.EmailTemplate)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Clone indicates an expected call of Clone
func (mr *MockTemplateServiceMockRecorder) Clone(ctx, id, newName interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Clone", reflect.TypeOf((*MockTemplateService)(nil).Clone), ctx, id, newName)
}

// UsageStats mocks base method
func (m *MockTemplateService) UsageStats(ctx context.Context, id int64) (*domain.TemplateUsageStats, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UsageStats", ctx, id)
	ret0, _ := ret[0].(*domain.TemplateUsageStats)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UsageStats indicates an expected call of UsageStats
func (mr *MockTemplateServiceMockRecorder) UsageStats(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UsageStats", reflect.TypeOf((*MockTemplateService)(nil).UsageStats), ctx, id)
}

// MockSchedulerService is a mock of SchedulerService interface
type MockSchedulerService struct {
	ctrl     *gomock.Controller
	recorder *MockSchedulerServiceMockRecorder
}

// MockSchedulerServiceMockRecorder is the mock recorder for MockSchedulerService
type MockSchedulerServiceMockRecorder struct {
	mock *MockSchedulerService
}

// NewMockSchedulerService creates a new mock instance
func NewMockSchedulerService(ctrl *gomock.Controller) *MockSchedulerService {
	mock := &MockSchedulerService{ctrl: ctrl}
	mock.recorder = &MockSchedulerServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockSchedulerService) EXPECT() *MockSchedulerServiceMockRecorder {
	return m.recorder
}

// Schedule mocks base method
func (m *MockSchedulerService) Schedule(ctx context.Context, email *domain.ScheduledEmail) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Schedule", ctx, email)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Schedule indicates an expected call of Schedule
func (mr *MockSchedulerServiceMockRecorder) Schedule(ctx, email interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Schedule", reflect.TypeOf((*MockSchedulerService)(nil).Schedule), ctx, email)
}

// Cancel mocks base method
func (m *MockSchedulerService) Cancel(ctx context.Context, id int64) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Cancel", ctx, id)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Cancel indicates an expected call of Cancel
func (mr *MockSchedulerServiceMockRecorder) Cancel(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cancel", reflect.TypeOf((*MockSchedulerService)(nil).Cancel), ctx, id)
}

// Reschedule mocks base method
func (m *MockSchedulerService) Reschedule(ctx context.Context, id int64, at time.Time) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reschedule", ctx, id, at)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Reschedule indicates an expected call of Reschedule
func (mr *MockSchedulerServiceMockRecorder) Reschedule(ctx, id, at interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reschedule", reflect.TypeOf((*MockSchedulerService)(nil).Reschedule), ctx, id, at)
}

// ListInRange mocks base method
func (m *MockSchedulerService) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.ScheduledEmail, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListInRange", ctx, from, to)
	ret0, _ := ret[0].([]*domain.ScheduledEmail)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListInRange indicates an expected call of ListInRange
func (mr *MockSchedulerServiceMockRecorder) ListInRange(ctx, from, to interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListInRange", reflect.TypeOf((*MockSchedulerService)(nil).ListInRange), ctx, from, to)
}

// ProcessDue mocks base method
func (m *MockSchedulerService) ProcessDue(ctx context.Context) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ProcessDue", ctx)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ProcessDue indicates an expected call of ProcessDue
func (mr *MockSchedulerServiceMockRecorder) ProcessDue(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ProcessDue", reflect.TypeOf((*MockSchedulerService)(nil).ProcessDue), ctx)
}

// MockHealthService is a mock of HealthService interface
type MockHealthService struct {
	ctrl     *gomock.Controller
	recorder *MockHealthServiceMockRecorder
}

// MockHealthServiceMockRecorder is the mock recorder for MockHealthService
type MockHealthServiceMockRecorder struct {
	mock *MockHealthService
}

// NewMockHealthService creates a new mock instance
func NewMockHealthService(ctrl *gomock.Controller) *MockHealthService {
	mock := &MockHealthService{ctrl: ctrl}
	mock.recorder = &MockHealthServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockHealthService) EXPECT() *MockHealthServiceMockRecorder {
	return m.recorder
}

// Check mocks base method
func (m *MockHealthService) Check(ctx context.Context) (*domain.HealthReport, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Check", ctx)
	ret0, _ := ret[0].(*domain.HealthReport)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Check indicates an expected call of Check
func (mr *MockHealthServiceMockRecorder) Check(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Check", reflect.TypeOf((*MockHealthService)(nil).Check), ctx)
}

// Heartbeat mocks base method
func (m *MockHealthService) Heartbeat(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Heartbeat", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// Heartbeat indicates an expected call of Heartbeat
func (mr *MockHealthServiceMockRecorder) Heartbeat(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Heartbeat", reflect.TypeOf((*MockHealthService)(nil).Heartbeat), ctx)
}

// Alert mocks base method
func (m *MockHealthService) Alert(ctx context.Context, level, title, message string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Alert", ctx, level, title, message)
	ret0, _ := ret[0].(error)
	return ret0
}

// Alert indicates an expected call of Alert
func (mr *MockHealthServiceMockRecorder) Alert(ctx, level, title, message interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Alert", reflect.TypeOf((*MockHealthService)(nil).Alert), ctx, level, title, message)
}

// MockCleanupService is a mock of CleanupService interface
type MockCleanupService struct {
	ctrl     *gomock.Controller
	recorder *MockCleanupServiceMockRecorder
}

// MockCleanupServiceMockRecorder is the mock recorder for MockCleanupService
type MockCleanupServiceMockRecorder struct {
	mock *MockCleanupService
}

// NewMockCleanupService creates a new mock instance
func NewMockCleanupService(ctrl *gomock.Controller) *MockCleanupService {
	mock := &MockCleanupService{ctrl: ctrl}
	mock.recorder = &MockCleanupServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockCleanupService) EXPECT() *MockCleanupServiceMockRecorder {
	return m.recorder
}

// RunScheduledPass mocks base method
func (m *MockCleanupService) RunScheduledPass(ctx context.Context) (*domain.CleanupResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RunScheduledPass", ctx)
	ret0, _ := ret[0].(*domain.CleanupResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RunScheduledPass indicates an expected call of RunScheduledPass
func (mr *MockCleanupServiceMockRecorder) RunScheduledPass(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RunScheduledPass", reflect.TypeOf((*MockCleanupService)(nil).RunScheduledPass), ctx)
}

// PerformFullCleanup mocks base method
func (m *MockCleanupService) PerformFullCleanup(ctx context.Context) (*domain.CleanupResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PerformFullCleanup", ctx)
	ret0, _ := ret[0].(*domain.CleanupResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PerformFullCleanup indicates an expected call of PerformFullCleanup
func (mr *MockCleanupServiceMockRecorder) PerformFullCleanup(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PerformFullCleanup", reflect.TypeOf((*MockCleanupService)(nil).PerformFullCleanup), ctx)
}

// PerformAggressiveCleanup mocks base method
func (m *MockCleanupService) PerformAggressiveCleanup(ctx context.Context, targetFreePercent float64) (*domain.CleanupResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PerformAggressiveCleanup", ctx, targetFreePercent)
	ret0, _ := ret[0].(*domain.CleanupResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PerformAggressiveCleanup indicates an expected call of PerformAggressiveCleanup
func (mr *MockCleanupServiceMockRecorder) PerformAggressiveCleanup(ctx, targetFreePercent interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PerformAggressiveCleanup", reflect.TypeOf((*MockCleanupService)(nil).PerformAggressiveCleanup), ctx, targetFreePercent)
}

// ArchiveEmailHistory mocks base method
func (m *MockCleanupService) ArchiveEmailHistory(ctx context.Context, retentionDays int, dir string) (int64, string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ArchiveEmailHistory", ctx, retentionDays, dir)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(string)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// ArchiveEmailHistory indicates an expected call of ArchiveEmailHistory
func (mr *MockCleanupServiceMockRecorder) ArchiveEmailHistory(ctx, retentionDays, dir interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ArchiveEmailHistory", reflect.TypeOf((*MockCleanupService)(nil).ArchiveEmailHistory), ctx, retentionDays, dir)
}

// AnalyzeDiskSpace mocks base method
func (m *MockCleanupService) AnalyzeDiskSpace(ctx context.Context) (*domain.DiskSpaceReport, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AnalyzeDiskSpace", ctx)
	ret0, _ := ret[0].(*domain.DiskSpaceReport)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AnalyzeDiskSpace indicates an expected call of AnalyzeDiskSpace
func (mr *MockCleanupServiceMockRecorder) AnalyzeDiskSpace(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AnalyzeDiskSpace", reflect.TypeOf((*MockCleanupService)(nil).AnalyzeDiskSpace), ctx)
}

// CreateBackup mocks base method
func (m *MockCleanupService) CreateBackup(ctx context.Context) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateBackup", ctx)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateBackup indicates an expected call of CreateBackup
func (mr *MockCleanupServiceMockRecorder) CreateBackup(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateBackup", reflect.TypeOf((*MockCleanupService)(nil).CreateBackup), ctx)
}

// OptimizeDatabase mocks base method
func (m *MockCleanupService) OptimizeDatabase(ctx context.Context) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OptimizeDatabase", ctx)
	ret0, _ := ret[0].(error)
	return ret0
}

// OptimizeDatabase indicates an expected call of OptimizeDatabase
func (mr *MockCleanupServiceMockRecorder) OptimizeDatabase(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OptimizeDatabase", reflect.TypeOf((*MockCleanupService)(nil).OptimizeDatabase), ctx)
}
