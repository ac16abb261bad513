// Package viewer binds the principal-component coefficients of one sample to
// integer controls and re-renders the reconstructed image on every change.
//
// A Viewer is built over a fitted pca.Model and a Surface. The Surface is the
// windowing toolkit: it creates controls, shows images and blocks waiting for
// events. Two surfaces ship with the package:
//
//   - MemorySurface: headless and scriptable, for tests and batch use.
//   - CVSurface: an OpenCV window with one trackbar per control, available
//     when built with the gocv tag.
//
// Control positions map to signed coefficients through a Mapping
// (position − bias, clipped into [0, range]). Renders run synchronously on the
// goroutine that delivers the event and never overlap.
package viewer
