package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int             { return &v }
func timePtr(t time.Time) *time.Time { return &t }

func TestScheduledEmailValidate(t *testing.T) {
	now := time.Now().UTC()
	valid := func() *ScheduledEmail {
		return &ScheduledEmail{
			ToEmails:    "a@x.io",
			Subject:     "hi",
			Body:        "hello",
			NextRunTime: now.Add(time.Hour),
		}
	}

	require.NoError(t, valid().Validate(now))

	s := valid()
	s.ToEmails = ""
	assert.Error(t, s.Validate(now))

	s = valid()
	s.Subject = ""
	assert.Error(t, s.Validate(now))

	// a template-bound rule may omit the subject
	s = valid()
	s.Subject = ""
	tid := int64(7)
	s.TemplateID = &tid
	assert.NoError(t, s.Validate(now))

	s = valid()
	s.NextRunTime = now.Add(-time.Hour)
	assert.Error(t, s.Validate(now))

	s = valid()
	s.IntervalMinutes = intPtr(0)
	assert.Error(t, s.Validate(now))

	s = valid()
	s.EndDate = timePtr(now.Add(time.Minute))
	assert.Error(t, s.Validate(now))
}

func TestAdvanceAfterRun_OneShot(t *testing.T) {
	now := time.Now().UTC()
	s := &ScheduledEmail{IsActive: true, NextRunTime: now.Add(-time.Second)}

	s.AdvanceAfterRun(now, "success", nil)

	assert.Equal(t, 1, s.ExecutionCount)
	assert.False(t, s.IsActive)
	require.NotNil(t, s.LastExecutedAt)
	assert.Equal(t, "success", *s.LastExecutionStatus)
	assert.Nil(t, s.LastExecutionError)
}

func TestAdvanceAfterRun_RecurringInterval(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &ScheduledEmail{
		IsActive:        true,
		IsRecurring:     true,
		IntervalMinutes: intPtr(30),
		NextRunTime:     now.Add(-time.Minute),
	}

	s.AdvanceAfterRun(now, "success", nil)

	assert.True(t, s.IsActive)
	assert.True(t, s.NextRunTime.After(now))
	assert.Equal(t, now.Add(29*time.Minute), s.NextRunTime)
}

func TestAdvanceAfterRun_RecurringDailyFallback(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &ScheduledEmail{
		IsActive:    true,
		IsRecurring: true,
		NextRunTime: now,
	}

	s.AdvanceAfterRun(now, "success", nil)

	assert.Equal(t, now.Add(24*time.Hour), s.NextRunTime)
	assert.True(t, s.IsActive)
}

func TestAdvanceAfterRun_CatchesUpAfterOutage(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	s := &ScheduledEmail{
		IsActive:        true,
		IsRecurring:     true,
		IntervalMinutes: intPtr(60),
		// nine days behind
		NextRunTime: now.AddDate(0, 0, -9),
	}

	s.AdvanceAfterRun(now, "success", nil)

	assert.Equal(t, 1, s.ExecutionCount)
	assert.True(t, s.NextRunTime.After(now))
	assert.True(t, s.NextRunTime.Sub(now) <= time.Hour)
}

func TestAdvanceAfterRun_Deactivation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("end date reached", func(t *testing.T) {
		s := &ScheduledEmail{
			IsActive:        true,
			IsRecurring:     true,
			IntervalMinutes: intPtr(60),
			NextRunTime:     now,
			EndDate:         timePtr(now.Add(30 * time.Minute)),
		}
		s.AdvanceAfterRun(now, "success", nil)
		assert.False(t, s.IsActive)
	})

	t.Run("max executions reached", func(t *testing.T) {
		s := &ScheduledEmail{
			IsActive:        true,
			IsRecurring:     true,
			IntervalMinutes: intPtr(60),
			NextRunTime:     now,
			MaxExecutions:   intPtr(2),
			ExecutionCount:  1,
		}
		s.AdvanceAfterRun(now, "success", nil)
		assert.Equal(t, 2, s.ExecutionCount)
		assert.False(t, s.IsActive)
	})
}

func TestAdvanceAfterRun_RecordsError(t *testing.T) {
	now := time.Now().UTC()
	s := &ScheduledEmail{IsActive: true, NextRunTime: now}

	s.AdvanceAfterRun(now, "failed", errors.New("enqueue refused"))

	require.NotNil(t, s.LastExecutionError)
	assert.Equal(t, "enqueue refused", *s.LastExecutionError)
}

func TestToQueueItem(t *testing.T) {
	now := time.Now().UTC()
	tid := int64(3)
	s := &ScheduledEmail{
		Priority:     PriorityHigh,
		ToEmails:     "a@x.io; b@x.io",
		Subject:      "report",
		Body:         "{Name}",
		IsHTML:       true,
		TemplateID:   &tid,
		TemplateData: `{"Name":"Sam"}`,
		CreatedBy:    "cron",
	}

	item := s.ToQueueItem("qid-1", now)

	assert.Equal(t, "qid-1", item.QueueID)
	assert.Equal(t, PriorityHigh, item.Priority)
	assert.Equal(t, s.ToEmails, item.ToEmails)
	assert.True(t, item.RequiresTemplateProcessing)
	assert.Equal(t, EmailStatusQueued, item.Status)
	assert.Equal(t, DefaultMaxRetries, item.MaxRetries)
	assert.Equal(t, "scheduler", item.RequestSource)
}
