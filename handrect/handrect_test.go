package handrect

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/posefile/errs"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestParseFile_Left(t *testing.T) {
	path := writeFile(t, "hand_left.txt", "1.0 2.0 3.0 4.0\n5.0 6.0 7.0 8.0\n")

	pairs, err := ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, []Pair{
		{Left: Rectangle{1, 2, 3, 4}},
		{Left: Rectangle{5, 6, 7, 8}},
	}, pairs)

	for _, p := range pairs {
		require.True(t, p.Right.IsZero())
	}
}

func TestParseFile_Right(t *testing.T) {
	path := writeFile(t, "hand_right.txt", "10 20 30 40")

	pairs, err := ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, []Pair{{Right: Rectangle{10, 20, 30, 40}}}, pairs)
	require.True(t, pairs[0].Left.IsZero())
}

func TestIsLeftPath(t *testing.T) {
	tests := []struct {
		path string
		left bool
	}{
		{"hand_left.txt", true},
		{"HAND_LEFT.TXT", true},
		{"hand_right.txt", false},
		{"frame_l.txt", true},
		{"/data/frames/0001l.txt", true},
		{"0001r.txt", false},
		{`C:\hints\person_l.rect`, true},
		{"archive.l.txt", true},
		{"left_hand.txt", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.left, IsLeftPath(tt.path))
		})
	}
}

func TestParseFile_Empty(t *testing.T) {
	pairs, err := ParseFile(writeFile(t, "empty_l.txt", ""))
	require.NoError(t, err)
	require.NotNil(t, pairs)
	require.Empty(t, pairs)
}

func TestParse_MalformedLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    string
	}{
		{"three tokens", "1 2 3\n", "line 1 has 3 values"},
		{"five tokens", "1 2 3 4\n1 2 3 4 5\n", "line 2 has 5 values"},
		{"blank line", "1 2 3 4\n\n5 6 7 8\n", "line 2 has 0 values"},
		{"not a number", "1 2 x 4\n", `line 1 value 3 "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.content), true)
			require.ErrorIs(t, err, errs.ErrMalformedLine)
			require.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestParse_Whitespace(t *testing.T) {
	pairs, err := Parse(strings.NewReader("  1\t2  3 4 \r\n-5.5 6e1 7 8"), false)
	require.NoError(t, err)
	require.Equal(t, []Pair{
		{Right: Rectangle{1, 2, 3, 4}},
		{Right: Rectangle{-5.5, 60, 7, 8}},
	}, pairs)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing_l.txt"))
	require.ErrorIs(t, err, errs.ErrIO)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestParse_ReadError(t *testing.T) {
	_, err := Parse(failingReader{}, true)
	require.ErrorIs(t, err, errs.ErrIO)
}

func TestRectangle(t *testing.T) {
	r := Rectangle{X: 1.5, Y: 2, Width: 10, Height: 4}

	require.Equal(t, float32(40), r.Area())
	require.Equal(t, "1.5 2 10 4", r.String())
	require.False(t, r.IsZero())

	pairs, err := Parse(strings.NewReader(r.String()), true)
	require.NoError(t, err)
	require.Equal(t, r, pairs[0].Left)
}
