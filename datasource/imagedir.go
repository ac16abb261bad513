// SPDX-License-Identifier: MIT

package datasource

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// imageExtensions are the file suffixes ImageDir decodes (lower case).
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// ImageDir loads every PNG/JPEG file of Dir as one gray sample.
// Files are ordered lexically by name; subdirectories are ignored.
type ImageDir struct {
	Dir string

	// Limit bounds the number of concurrent decoders (0: GOMAXPROCS).
	Limit int

	// Logger receives one debug entry per load (optional).
	Logger logrus.FieldLogger
}

// LoadSamples implements Source.
func (d ImageDir) LoadSamples(ctx context.Context) (*mat.Dense, error) {
	samples, _, err := d.Load(ctx)

	return samples, err
}

// Load decodes the directory and also returns the common image size
// (X = columns, Y = rows).
//
// Errors:
//   - ErrEmptySource when the directory holds no image files.
//   - ErrInconsistentSample when sizes differ.
//   - decode and I/O errors, tagged with the file name.
func (d ImageDir) Load(ctx context.Context) (*mat.Dense, image.Point, error) {
	const op = "ImageDir.Load"

	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, image.Point{}, sourceErrorf(op, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		files = append(files, filepath.Join(d.Dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, image.Point{}, sourceErrorf(op, fmt.Errorf("%s: %w", d.Dir, ErrEmptySource))
	}
	sort.Strings(files)

	limit := d.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	rows := make([][]float64, len(files))
	sizes := make([]image.Point, len(files))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i := range files {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, size, err := decodeGray(files[i])
			if err != nil {
				return err
			}
			rows[i], sizes[i] = row, size
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, image.Point{}, sourceErrorf(op, err)
	}

	for i := 1; i < len(sizes); i++ {
		if sizes[i] != sizes[0] {
			return nil, image.Point{}, sourceErrorf(op, fmt.Errorf("%s is %v, %s is %v: %w",
				filepath.Base(files[i]), sizes[i], filepath.Base(files[0]), sizes[0], ErrInconsistentSample))
		}
	}

	samples, err := denseFromRows(op, rows)
	if err != nil {
		return nil, image.Point{}, err
	}
	if d.Logger != nil {
		d.Logger.WithFields(logrus.Fields{
			"action": "datasource_image_dir",
			"dir":    d.Dir,
			"images": len(files),
			"width":  sizes[0].X,
			"height": sizes[0].Y,
		}).Debug("loaded image directory")
	}

	return samples, sizes[0], nil
}

// decodeGray reads one image and flattens its gray levels row by row.
func decodeGray(path string) ([]float64, image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, image.Point{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	b := img.Bounds()
	out := make([]float64, 0, b.Dx()*b.Dy())
	var x, y int
	for y = b.Min.Y; y < b.Max.Y; y++ {
		for x = b.Min.X; x < b.Max.X; x++ {
			out = append(out, float64(color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y))
		}
	}

	return out, b.Size(), nil
}
