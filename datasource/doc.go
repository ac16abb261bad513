// Package datasource loads sample matrices for PCA: one sample per row, one
// feature per column, images flattened row by row.
//
// Sources:
//
//   - PointsFile: delimited text, one sample per line, optional trailing
//     label column, '#' comments.
//   - ImageDir: every PNG/JPEG in a directory, decoded concurrently,
//     converted to 8-bit gray, in lexical file order.
//   - VideoFrames: frames of eye videos, gray and resized through OpenCV.
//     Requires the gocv build tag; otherwise it fails with
//     ErrVideoUnsupported.
package datasource
