// SPDX-License-Identifier: MIT

package datasource_test

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndersHqst/estimating-gaze-direction/datasource"
)

// writeGrayPNG writes a w×h image whose pixel (x,y) is base+y*w+x.
func writeGrayPNG(t *testing.T, dir, name string, w, h int, base uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: base + uint8(y*w+x)})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestImageDir_OrderAndLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeGrayPNG(t, dir, "b.png", 3, 2, 100)
	writeGrayPNG(t, dir, "a.png", 3, 2, 10)
	writeGrayPNG(t, dir, "c.PNG", 3, 2, 200)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o700))

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	X, size, err := datasource.ImageDir{Dir: dir, Limit: 2, Logger: logger}.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, image.Pt(3, 2), size)
	r, c := X.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 6, c)
	// a.png first, row-major: pixel (x=2, y=1) is feature 5.
	assert.Equal(t, []float64{10, 11, 12, 13, 14, 15}, X.RawRowView(0))
	assert.Equal(t, 100.0, X.At(1, 0))
	assert.Equal(t, 205.0, X.At(2, 5))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, 3, hook.LastEntry().Data["images"])
}

func TestImageDir_JPEG(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	f, err := os.Create(filepath.Join(dir, "eye.jpg"))
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 100}))
	require.NoError(t, f.Close())

	X, err := datasource.ImageDir{Dir: dir}.LoadSamples(context.Background())
	require.NoError(t, err)
	_, c := X.Dims()
	assert.Equal(t, 64, c)
	assert.InDelta(t, 128.0, X.At(0, 27), 2)
}

func TestImageDir_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	mixed := t.TempDir()
	writeGrayPNG(t, mixed, "a.png", 3, 2, 0)
	writeGrayPNG(t, mixed, "b.png", 2, 3, 0)
	_, err := datasource.ImageDir{Dir: mixed}.LoadSamples(ctx)
	assert.ErrorIs(t, err, datasource.ErrInconsistentSample)

	_, err = datasource.ImageDir{Dir: t.TempDir()}.LoadSamples(ctx)
	assert.ErrorIs(t, err, datasource.ErrEmptySource)

	broken := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(broken, "x.png"), []byte("not a png"), 0o600))
	_, err = datasource.ImageDir{Dir: broken}.LoadSamples(ctx)
	assert.ErrorContains(t, err, "x.png")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = datasource.ImageDir{Dir: mixed}.LoadSamples(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
}
