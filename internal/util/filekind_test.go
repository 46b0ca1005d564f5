package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyName(t *testing.T) {
	t.Parallel()

	require.Equal(t, KindDirectory, ClassifyName("photos.jpg", true))
	require.Equal(t, KindImage, ClassifyName("cat.JPEG", false))
	require.Equal(t, KindVideo, ClassifyName("clip.mkv", false))
	require.Equal(t, KindAudio, ClassifyName("song.flac", false))
	require.Equal(t, KindArchive, ClassifyName("backup.tar", false))
	require.Equal(t, KindDocument, ClassifyName("notes.md", false))
	require.Equal(t, KindFile, ClassifyName("Makefile", false))
}

func TestIsImageExtension(t *testing.T) {
	t.Parallel()

	require.True(t, IsImageExtension(".png"))
	require.True(t, IsImageExtension(" .JPEG "))
	require.False(t, IsImageExtension(".pdf"))
	require.False(t, IsImageExtension(""))
}

func TestMIMETypeForName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", MIMETypeForName("README"))
	require.Contains(t, MIMETypeForName("page.html"), "text/html")
	require.Equal(t, "application/octet-stream", MIMETypeForName("blob.zzzunknown"))
}
