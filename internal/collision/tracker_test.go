package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/posefile/internal/hash"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Names())
	require.Empty(t, tracker.Duplicates())
}

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()

	require.False(t, tracker.Track("pose_keypoints_2d"))
	require.False(t, tracker.Track("face_keypoints_2d"))
	require.Equal(t, 2, tracker.Count())
	require.Equal(t, []string{"pose_keypoints_2d", "face_keypoints_2d"}, tracker.Names())

	require.True(t, tracker.Track("pose_keypoints_2d"))
	require.True(t, tracker.Track("pose_keypoints_2d"))
	require.Equal(t, 2, tracker.Count())
	require.Equal(t, []string{"pose_keypoints_2d"}, tracker.Duplicates())
	require.False(t, tracker.HasCollision())
}

func TestTracker_EmptyName(t *testing.T) {
	tracker := NewTracker()

	require.False(t, tracker.Track(""))
	require.True(t, tracker.Track(""))
	require.Equal(t, []string{""}, tracker.Duplicates())
}

func TestTracker_Collision(t *testing.T) {
	tracker := NewTracker()

	// Another name already owns the ID of "d".
	tracker.ids[hash.ID("d")] = []string{"someone-else"}

	require.False(t, tracker.Track("d"))
	require.True(t, tracker.HasCollision())
	require.Equal(t, []string{"d"}, tracker.Names())
	require.Empty(t, tracker.Duplicates())
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()
	tracker.Track("x")
	tracker.Track("x")

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.Empty(t, tracker.Duplicates())
	require.False(t, tracker.HasCollision())
	require.False(t, tracker.Track("x"))
}

func TestDuplicates(t *testing.T) {
	require.Empty(t, Duplicates(nil))
	require.Empty(t, Duplicates([]string{"a", "b"}))
	require.Equal(t, []string{"b", "a"}, Duplicates([]string{"a", "b", "b", "a", "b"}))
}
