package testutil

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mock := NewMockDB(t)
	mock.Mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	var n int
	require.NoError(t, mock.DB.Raw("SELECT 1").Scan(&n).Error)
	assert.Equal(t, 1, n)
	mock.ExpectationsWereMet(t)
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("product-a"), NewTestUUID("product-a"))
	assert.NotEqual(t, NewTestUUID("product-a"), NewTestUUID("product-b"))
}

func TestDay(t *testing.T) {
	d := Day(2026, time.March, 4)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, 4, d.Day())
}

func TestWaitForCondition(t *testing.T) {
	var calls atomic.Int32
	ok := WaitForCondition(func() bool { return calls.Add(1) >= 3 }, time.Second, time.Millisecond)
	assert.True(t, ok)

	assert.False(t, WaitForCondition(func() bool { return false }, 20*time.Millisecond, 5*time.Millisecond))
}

func TestRequireEventually(t *testing.T) {
	start := time.Now()
	RequireEventually(t, func() bool { return time.Since(start) > 20*time.Millisecond }, time.Second, 5*time.Millisecond)
}
