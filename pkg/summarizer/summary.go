// Package summarizer produces a report of a finished review session.
package summarizer

import (
	"image"
	"time"
)

// Summary contains the data collected during a review session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	SessionID   string

	Video       VideoInfo
	Playback    PlaybackInfo
	Calibration CalibrationInfo
}

// VideoInfo describes the reviewed file.
type VideoInfo struct {
	Path      string
	Frames    int
	Framerate float64
}

// PlaybackInfo contains playback counters.
type PlaybackInfo struct {
	Rate          float64
	FinalPosition int
	Ticks         uint64
	FramesShown   uint64
	FramesSkipped uint64
	Seeks         uint64
	Screenshots   uint64
}

// CalibrationInfo contains the reference points and the measured distance.
type CalibrationInfo struct {
	Points          []image.Point
	KnownRoadMeters float64
	Calibrated      bool
	ObjectMeters    float64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSession sets the session identifier.
func (b *Builder) WithSession(id string) *Builder {
	b.summary.SessionID = id
	return b
}

// WithVideo sets video information.
func (b *Builder) WithVideo(path string, frames int, framerate float64) *Builder {
	b.summary.Video = VideoInfo{
		Path:      path,
		Frames:    frames,
		Framerate: framerate,
	}
	return b
}

// WithPlayback sets playback counters.
func (b *Builder) WithPlayback(playback PlaybackInfo) *Builder {
	b.summary.Playback = playback
	return b
}

// WithPoints records the reference points placed by the user.
func (b *Builder) WithPoints(points []image.Point, knownRoadMeters float64) *Builder {
	b.summary.Calibration.Points = append([]image.Point(nil), points...)
	b.summary.Calibration.KnownRoadMeters = knownRoadMeters
	return b
}

// WithMeasurement records the calibrated object distance.
func (b *Builder) WithMeasurement(objectMeters float64) *Builder {
	b.summary.Calibration.Calibrated = true
	b.summary.Calibration.ObjectMeters = objectMeters
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
