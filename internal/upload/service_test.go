package upload_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/share-preview/internal/assets/memory"
	"github.com/JakeFAU/share-preview/internal/clock"
	"github.com/JakeFAU/share-preview/internal/upload"
)

var uploadedAt = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, upload.KindOG, upload.ParseKind("og"))
	assert.Equal(t, upload.KindOG, upload.ParseKind(" OG "))
	assert.Equal(t, upload.KindFavicon, upload.ParseKind("favicon"))
	assert.Equal(t, upload.KindFavicon, upload.ParseKind(""))
}

func TestTargetName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		kind     upload.Kind
		filename string
		want     string
	}{
		{upload.KindOG, "card.png", "og-image.png"},
		{upload.KindOG, "../../etc/shot.jpeg", "og-image.jpeg"},
		{upload.KindFavicon, "C:\\icons\\fav.ico", "favicon.ico"},
		{upload.KindFavicon, "noext", "favicon"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, upload.TargetName(tc.kind, tc.filename), tc.filename)
	}
}

func TestSaveOGImageProbesDimensions(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(nil)
	svc := upload.NewService(store, "public", 0, clock.Fixed(uploadedAt), nil)
	data := pngBytes(t, 40, 21)

	res, err := svc.Save(context.Background(), upload.KindOG, "card.png", data)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "/og-image.png", res.URL)
	assert.Equal(t, len(data), res.Size)
	assert.Equal(t, uploadedAt, res.UploadDate)
	require.NotNil(t, res.Width)
	require.NotNil(t, res.Height)
	assert.Equal(t, 40, *res.Width)
	assert.Equal(t, 21, *res.Height)

	stored, err := store.Read(context.Background(), "public/og-image.png")
	require.NoError(t, err)
	assert.Equal(t, data, stored)
}

func TestSaveFaviconSkipsDimensions(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(nil)
	svc := upload.NewService(store, "", 0, clock.Fixed(uploadedAt), nil)

	res, err := svc.Save(context.Background(), upload.KindFavicon, "icon.png", pngBytes(t, 16, 16))
	require.NoError(t, err)
	assert.Equal(t, "/favicon.png", res.URL)
	assert.Nil(t, res.Width)
	assert.Nil(t, res.Height)
	assert.True(t, store.Exists(context.Background(), "public/favicon.png"))
}

func TestSaveUndecodableOGImage(t *testing.T) {
	t.Parallel()

	svc := upload.NewService(memory.NewStore(nil), "public", 0, clock.Fixed(uploadedAt), nil)
	res, err := svc.Save(context.Background(), upload.KindOG, "card.svg", []byte("<svg/>"))
	require.NoError(t, err)
	assert.Equal(t, "/og-image.svg", res.URL)
	assert.Nil(t, res.Width)
}

func TestSaveRejects(t *testing.T) {
	t.Parallel()

	svc := upload.NewService(memory.NewStore(nil), "public", 4, clock.Fixed(uploadedAt), nil)

	_, err := svc.Save(context.Background(), upload.KindOG, "a.png", nil)
	assert.ErrorIs(t, err, upload.ErrNoFile)

	_, err = svc.Save(context.Background(), upload.KindOG, "a.png", []byte("12345"))
	assert.ErrorIs(t, err, upload.ErrTooLarge)
}
