package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPercentage(t *testing.T) {
	got, err := ClampPercentage(42)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = ClampPercentage(150)
	require.NoError(t, err)
	assert.Equal(t, 100, got)

	got, err = ClampPercentage(100)
	require.NoError(t, err)
	assert.Equal(t, 100, got)

	got, err = ClampPercentage(0)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = ClampPercentage(-5)
	assert.Error(t, err)
}

func TestMarkAchievedMilestonesBelowHundred(t *testing.T) {
	milestones := []Milestone{
		{Title: "Read chapter one"},
		{Title: "Write summary"},
	}

	got := MarkAchievedMilestones(milestones, 60, time.Now())

	for _, m := range got {
		assert.False(t, m.Achieved)
		assert.Nil(t, m.AchievedAt)
	}
}

func TestMarkAchievedMilestonesAtHundred(t *testing.T) {
	earlier := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	milestones := []Milestone{
		{Title: "Read chapter one", Achieved: true, AchievedAt: &earlier},
		{Title: "Write summary"},
	}

	got := MarkAchievedMilestones(milestones, 100, now)

	// Already-achieved milestones keep their original timestamp.
	require.NotNil(t, got[0].AchievedAt)
	assert.Equal(t, earlier, *got[0].AchievedAt)

	assert.True(t, got[1].Achieved)
	require.NotNil(t, got[1].AchievedAt)
	assert.Equal(t, now, *got[1].AchievedAt)
}
