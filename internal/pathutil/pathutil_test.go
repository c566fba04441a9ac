package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileNameNoExtension(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"hand_left.txt", "hand_left"},
		{"/data/rects/hand_l.txt", "hand_l"},
		{`C:\data\hand_r.txt`, "hand_r"},
		{"archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
		{"dir.d/file", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			require.Equal(t, tt.expected, FileNameNoExtension(tt.path))
		})
	}
}

func TestExtension(t *testing.T) {
	require.Equal(t, "json", Extension("/tmp/pose.JSON"))
	require.Equal(t, "yml", Extension("a.b.yml"))
	require.Equal(t, "", Extension("trailing."))
	require.Equal(t, "", Extension("dir.d/noext"))
}

func TestFullName(t *testing.T) {
	require.Equal(t, "out/pose.yaml", FullName("out/pose", "yaml"))
}

func TestIndexName(t *testing.T) {
	require.Equal(t, "000000000000", IndexName(0))
	require.Equal(t, "000000000042", IndexName(42))
	require.Len(t, IndexName(123456789012), IndexNameLength)
}

func TestJoin(t *testing.T) {
	require.Equal(t, "name.json", Join("", "name.json"))
	require.Equal(t, filepath.Join("out", "name.json"), Join("out", "name.json"))
}
