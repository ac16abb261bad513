// SPDX-License-Identifier: MIT

package datasource

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// PointsFile reads samples from delimited text.
//
// Blank lines and lines starting with '#' are skipped. With Delimiter 0 the
// fields are separated by any run of whitespace; otherwise the file is read
// as CSV with that delimiter. When Labeled is set the last field of every
// line is the label and is not part of the sample.
type PointsFile struct {
	Path      string
	Delimiter rune
	Labeled   bool
}

// LoadSamples implements Source.
func (p PointsFile) LoadSamples(ctx context.Context) (*mat.Dense, error) {
	samples, _, err := p.load(ctx)

	return samples, err
}

// LoadLabels implements LabelSource.
func (p PointsFile) LoadLabels(ctx context.Context) ([]float64, error) {
	if !p.Labeled {
		return nil, sourceErrorf("PointsFile.LoadLabels", ErrNoLabels)
	}
	_, labels, err := p.load(ctx)

	return labels, err
}

// Load returns samples and labels (nil when unlabeled) in one pass.
func (p PointsFile) Load(ctx context.Context) (*mat.Dense, []float64, error) {
	return p.load(ctx)
}

func (p PointsFile) load(ctx context.Context) (*mat.Dense, []float64, error) {
	const op = "PointsFile.Load"

	f, err := os.Open(p.Path)
	if err != nil {
		return nil, nil, sourceErrorf(op, err)
	}
	defer f.Close()

	records, err := p.records(ctx, f)
	if err != nil {
		return nil, nil, sourceErrorf(op, err)
	}

	rows := make([][]float64, 0, len(records))
	var labels []float64
	for i, rec := range records {
		vals := make([]float64, len(rec))
		for j, field := range rec {
			if vals[j], err = strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
				return nil, nil, sourceErrorf(op, fmt.Errorf("record %d field %d: %w", i+1, j+1, err))
			}
		}
		if p.Labeled {
			if len(vals) < 2 {
				return nil, nil, sourceErrorf(op, fmt.Errorf("record %d has no features besides the label: %w", i+1, ErrInconsistentSample))
			}
			labels = append(labels, vals[len(vals)-1])
			vals = vals[:len(vals)-1]
		}
		rows = append(rows, vals)
	}

	samples, err := denseFromRows(op, rows)
	if err != nil {
		return nil, nil, err
	}

	return samples, labels, nil
}

// records splits the input into string fields, skipping comments and blanks.
func (p PointsFile) records(ctx context.Context, r io.Reader) ([][]string, error) {
	if p.Delimiter != 0 {
		cr := csv.NewReader(r)
		cr.Comma = p.Delimiter
		cr.Comment = '#'
		cr.TrimLeadingSpace = true
		cr.FieldsPerRecord = -1 // checked by denseFromRows

		return cr.ReadAll()
	}

	var out [][]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.Fields(line))
	}

	return out, sc.Err()
}
