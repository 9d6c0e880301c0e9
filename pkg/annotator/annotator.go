// Package annotator collects reference clicks and derives the calibration
// lines and distance shown over the video.
package annotator

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// MaxPoints is the number of reference points a session collects.
const MaxPoints = 3

// DefaultKnownRoadMeters is the real-world length of the road segment.
const DefaultKnownRoadMeters = 2.0

// ErrCalibrationUndefined is returned when the road segment has zero length.
var ErrCalibrationUndefined = errors.New("annotator: calibration undefined")

// Segment is a line between two points in frame coordinates.
type Segment struct {
	From image.Point
	To   image.Point
}

// Length returns the Euclidean length of the segment in pixels.
func (s Segment) Length() float64 {
	return pixelDistance(s.From, s.To)
}

// Calibration is the pixel-to-meter result derived from three points.
type Calibration struct {
	PixelDistanceRoad   float64
	PixelDistanceObject float64
	KnownRoadMeters     float64
	ObjectMeters        float64
}

// Overlay is the geometry to draw for the current points.
type Overlay struct {
	Road            Segment
	Object          *Segment // nil until the third point exists
	KnownRoadMeters float64

	// Calibration is set when Object is set and the road segment is not degenerate.
	Calibration *Calibration
	// Err is ErrCalibrationUndefined when Object is set but no distance can be derived.
	Err error
}

// Annotator holds the reference points of one session.
// It is safe for concurrent use.
type Annotator struct {
	known float64

	mu     sync.Mutex
	points []image.Point
}

// New creates an Annotator using knownRoadMeters as the road segment length.
// Non-positive values fall back to DefaultKnownRoadMeters.
func New(knownRoadMeters float64) *Annotator {
	if knownRoadMeters <= 0 {
		knownRoadMeters = DefaultKnownRoadMeters
	}
	return &Annotator{
		known:  knownRoadMeters,
		points: make([]image.Point, 0, MaxPoints),
	}
}

// AddPoint records a click. The first click sets the anchor row; later
// clicks are stored on that row. Returns the stored point and false when
// all points are already placed.
func (a *Annotator) AddPoint(x, y int) (image.Point, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.points) >= MaxPoints {
		return image.Point{}, false
	}
	if len(a.points) > 0 {
		y = a.points[0].Y
	}
	p := image.Pt(x, y)
	a.points = append(a.points, p)
	return p, true
}

// Points returns a copy of the stored points.
func (a *Annotator) Points() []image.Point {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]image.Point(nil), a.points...)
}

// Overlay returns the geometry for the current points, or false before
// two points exist.
func (a *Annotator) Overlay() (Overlay, bool) {
	points := a.Points()
	if len(points) < 2 {
		return Overlay{}, false
	}

	ov := Overlay{Road: Segment{From: points[0], To: points[1]}, KnownRoadMeters: a.known}
	if len(points) < MaxPoints {
		return ov, true
	}

	ov.Object = &Segment{From: points[1], To: points[2]}
	cal, err := Calibrate(points, a.known)
	if err != nil {
		ov.Err = err
		return ov, true
	}
	ov.Calibration = &cal
	return ov, true
}

// Calibrate derives the object distance from three points:
// objectMeters = |p1p2| * knownRoadMeters / |p0p1|.
func Calibrate(points []image.Point, knownRoadMeters float64) (Calibration, error) {
	if len(points) < MaxPoints {
		return Calibration{}, fmt.Errorf("need %d points, have %d", MaxPoints, len(points))
	}

	road := pixelDistance(points[0], points[1])
	object := pixelDistance(points[1], points[2])
	if road == 0 {
		return Calibration{}, ErrCalibrationUndefined
	}

	return Calibration{
		PixelDistanceRoad:   road,
		PixelDistanceObject: object,
		KnownRoadMeters:     knownRoadMeters,
		ObjectMeters:        object * knownRoadMeters / road,
	}, nil
}

func pixelDistance(a, b image.Point) float64 {
	return floats.Distance(
		[]float64{float64(a.X), float64(a.Y)},
		[]float64{float64(b.X), float64(b.Y)},
		2,
	)
}
