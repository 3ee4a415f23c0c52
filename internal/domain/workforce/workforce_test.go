package workforce

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestManpower(t *testing.T) *Manpower {
	worker, err := NewManpower("MP-0001", "Ramesh Kumar", TradeMason, uuid.New(), nil, decimal.NewFromInt(850), time.Now().AddDate(0, -6, 0))
	require.NoError(t, err)
	return worker
}

func TestNewManpower(t *testing.T) {
	t.Run("valid worker", func(t *testing.T) {
		worker := createTestManpower(t)
		assert.Equal(t, ManpowerStatusActive, worker.Status)
		assert.True(t, worker.IsActive())
	})

	t.Run("invalid code", func(t *testing.T) {
		_, err := NewManpower("MP 0001", "Ramesh Kumar", TradeMason, uuid.New(), nil, decimal.NewFromInt(850), time.Now())
		assert.Error(t, err)
	})

	t.Run("zero wage", func(t *testing.T) {
		_, err := NewManpower("MP-0002", "Ramesh Kumar", TradeMason, uuid.New(), nil, decimal.Zero, time.Now())
		assert.Error(t, err)
	})

	t.Run("empty trade", func(t *testing.T) {
		_, err := NewManpower("MP-0003", "Ramesh Kumar", "", uuid.New(), nil, decimal.NewFromInt(850), time.Now())
		assert.Error(t, err)
	})
}

func TestManpower_ReviseWage(t *testing.T) {
	worker := createTestManpower(t)
	require.NoError(t, worker.ReviseWage(decimal.NewFromInt(900)))
	assert.True(t, worker.DailyWage.Equal(decimal.NewFromInt(900)))
	assert.Error(t, worker.ReviseWage(decimal.NewFromInt(-5)))
}

func TestManpower_MoveToSite(t *testing.T) {
	t.Run("moves active worker", func(t *testing.T) {
		worker := createTestManpower(t)
		target := uuid.New()
		require.NoError(t, worker.MoveToSite(target))
		assert.Equal(t, target, worker.SiteID)
	})

	t.Run("rejects same site", func(t *testing.T) {
		worker := createTestManpower(t)
		assert.Error(t, worker.MoveToSite(worker.SiteID))
	})

	t.Run("rejects inactive worker", func(t *testing.T) {
		worker := createTestManpower(t)
		require.NoError(t, worker.Deactivate())
		assert.Error(t, worker.MoveToSite(uuid.New()))
	})
}

func TestManpower_Lifecycle(t *testing.T) {
	worker := createTestManpower(t)

	require.NoError(t, worker.Deactivate())
	assert.Equal(t, ManpowerStatusInactive, worker.Status)
	assert.Error(t, worker.Deactivate())

	require.NoError(t, worker.Activate())
	assert.Equal(t, ManpowerStatusActive, worker.Status)

	require.NoError(t, worker.Exit(time.Now()))
	assert.Equal(t, ManpowerStatusExited, worker.Status)
	assert.NotNil(t, worker.ExitedOn)
	assert.Error(t, worker.Exit(time.Now()))
}

func TestManpower_ExitBeforeJoin(t *testing.T) {
	worker := createTestManpower(t)
	assert.Error(t, worker.Exit(worker.JoinedOn.AddDate(0, 0, -1)))
}

func TestNewAttendance(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1)

	t.Run("valid record", func(t *testing.T) {
		rec, err := NewAttendance(uuid.New(), uuid.New(), uuid.New(), yesterday, AttendancePresent, decimal.NewFromInt(2))
		require.NoError(t, err)
		assert.Equal(t, AttendancePresent, rec.Mark)
		assert.Equal(t, 0, rec.Date.Hour())
	})

	t.Run("rejects future date", func(t *testing.T) {
		_, err := NewAttendance(uuid.New(), uuid.New(), uuid.New(), time.Now().AddDate(0, 0, 1), AttendancePresent, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects invalid mark", func(t *testing.T) {
		_, err := NewAttendance(uuid.New(), uuid.New(), uuid.New(), yesterday, AttendanceMark("leave"), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects overtime above 12 hours", func(t *testing.T) {
		_, err := NewAttendance(uuid.New(), uuid.New(), uuid.New(), yesterday, AttendancePresent, decimal.NewFromInt(13))
		assert.Error(t, err)
	})

	t.Run("rejects overtime for absent", func(t *testing.T) {
		_, err := NewAttendance(uuid.New(), uuid.New(), uuid.New(), yesterday, AttendanceAbsent, decimal.NewFromInt(1))
		assert.Error(t, err)
	})
}

func TestAttendance_Correct(t *testing.T) {
	rec, err := NewAttendance(uuid.New(), uuid.New(), uuid.New(), time.Now().AddDate(0, 0, -1), AttendanceAbsent, decimal.Zero)
	require.NoError(t, err)

	corrector := uuid.New()
	require.NoError(t, rec.Correct(AttendanceHalfDay, decimal.Zero, "reported after noon", corrector))
	assert.Equal(t, AttendanceHalfDay, rec.Mark)
	assert.Equal(t, corrector, rec.MarkedBy)

	assert.Error(t, rec.Correct(AttendanceAbsent, decimal.NewFromInt(3), "", corrector))
}

func TestAttendance_DayValue(t *testing.T) {
	base := time.Now().AddDate(0, 0, -1)
	present, _ := NewAttendance(uuid.New(), uuid.New(), uuid.New(), base, AttendancePresent, decimal.Zero)
	half, _ := NewAttendance(uuid.New(), uuid.New(), uuid.New(), base, AttendanceHalfDay, decimal.Zero)
	absent, _ := NewAttendance(uuid.New(), uuid.New(), uuid.New(), base, AttendanceAbsent, decimal.Zero)

	assert.True(t, present.DayValue().Equal(decimal.NewFromInt(1)))
	assert.True(t, half.DayValue().Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, absent.DayValue().IsZero())
}

func TestNewTransfer(t *testing.T) {
	t.Run("valid transfer", func(t *testing.T) {
		tr, err := NewTransfer(uuid.New(), uuid.New(), uuid.New(), uuid.New(), time.Now(), "shuttering crew needed at tower B")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, tr.ID)
	})

	t.Run("rejects same site", func(t *testing.T) {
		siteID := uuid.New()
		_, err := NewTransfer(uuid.New(), siteID, siteID, uuid.New(), time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("rejects future date", func(t *testing.T) {
		_, err := NewTransfer(uuid.New(), uuid.New(), uuid.New(), uuid.New(), time.Now().AddDate(0, 0, 2), "")
		assert.Error(t, err)
	})
}
