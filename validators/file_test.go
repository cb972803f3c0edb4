package validators

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mp4Header() []byte {
	head := append([]byte{0, 0, 0, 0x20}, []byte("ftypisom\x00\x00\x02\x00isomiso2avc1mp41")...)
	return append(head, bytes.Repeat([]byte{0xAB}, 64)...)
}

func pngHeader() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xCD}, 64)...)
}

func TestVideoValidator(t *testing.T) {
	viper.Set("upload.max_size", int64(1<<20))
	viper.Set("upload.allowed_types", []string{"video/mp4"})

	content := mp4Header()
	r := bytes.NewReader(content)

	mime, err := VideoValidator(r, int64(len(content)), "a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", mime)

	// Reader must be rewound for the storage write that follows
	pos, _ := r.Seek(0, 1)
	assert.Equal(t, int64(0), pos)
}

func TestVideoValidatorRejects(t *testing.T) {
	viper.Set("upload.max_size", int64(1<<20))
	viper.Set("upload.allowed_types", []string{"video/mp4"})

	content := mp4Header()

	t.Run("nil reader", func(t *testing.T) {
		_, err := VideoValidator(nil, 10, "a.mp4")
		assert.ErrorIs(t, err, ErrNoFile)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := VideoValidator(bytes.NewReader(nil), 0, "a.mp4")
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := VideoValidator(bytes.NewReader(content), 2<<20, "a.mp4")
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := VideoValidator(bytes.NewReader(content), int64(len(content)), strings.Repeat("a", 300)+".mp4")
		assert.ErrorIs(t, err, ErrFileNameTooLong)
	})

	t.Run("png pretending to be video", func(t *testing.T) {
		png := pngHeader()
		_, err := VideoValidator(bytes.NewReader(png), int64(len(png)), "a.mp4")
		assert.ErrorIs(t, err, ErrFileTypeUnsupported)
	})
}

func TestPosterValidator(t *testing.T) {
	content := pngHeader()

	mime, err := PosterValidator(bytes.NewReader(content), int64(len(content)), "a.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	video := mp4Header()
	_, err = PosterValidator(bytes.NewReader(video), int64(len(video)), "a.png")
	assert.ErrorIs(t, err, ErrFileTypeUnsupported)

	_, err = PosterValidator(bytes.NewReader(content), 50<<20, "a.png")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
