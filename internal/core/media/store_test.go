package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLocalStore_SaveAndDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/media", nil)
	require.NoError(t, err)
	ctx := context.Background()

	data := pngBytes(t)
	ref, err := store.Save(ctx, &Upload{Filename: "photo.PNG", Size: int64(len(data)), Content: bytes.NewReader(data)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "posts/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	stored, err := os.ReadFile(filepath.Join(store.Root(), filepath.FromSlash(ref)))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	require.NoError(t, store.Delete(ctx, ref))
	_, err = os.Stat(filepath.Join(store.Root(), filepath.FromSlash(ref)))
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, "/media/"+ref, store.URL(ref))

	// deleting twice is fine
	assert.NoError(t, store.Delete(ctx, ref))
}

func TestLocalStore_RejectsInvalidUploads(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/media", nil)
	require.NoError(t, err)
	ctx := context.Background()
	data := pngBytes(t)

	tests := []struct {
		name   string
		upload *Upload
		want   error
	}{
		{
			name:   "too large",
			upload: &Upload{Filename: "big.png", Size: MaxImageSize + 1, Content: bytes.NewReader(data)},
			want:   ErrImageTooLarge,
		},
		{
			name:   "bad extension",
			upload: &Upload{Filename: "doc.pdf", Size: int64(len(data)), Content: bytes.NewReader(data)},
			want:   ErrUnsupportedExtension,
		},
		{
			name:   "not an image",
			upload: &Upload{Filename: "fake.jpg", Size: 5, Content: strings.NewReader("hello")},
			want:   ErrInvalidImage,
		},
		{
			name:   "lying size header",
			upload: &Upload{Filename: "big.gif", Size: 10, Content: bytes.NewReader(make([]byte, MaxImageSize+10))},
			want:   ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Save(ctx, tt.upload)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestLocalStore_DeleteRejectsEscapingReferences(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/media", nil)
	require.NoError(t, err)

	for _, ref := range []string{"../etc/passwd", "/etc/passwd", ""} {
		assert.ErrorIs(t, store.Delete(context.Background(), ref), ErrInvalidReference, ref)
	}
}

func TestUpload_Extension(t *testing.T) {
	assert.Equal(t, "jpeg", (&Upload{Filename: "a.b.JPEG"}).Extension())
	assert.Equal(t, "", (&Upload{Filename: "noext"}).Extension())
}
