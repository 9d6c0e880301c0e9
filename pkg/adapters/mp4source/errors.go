package mp4source

import "errors"

var (
	// ErrNoFrames is returned by Open when the video track has no samples.
	ErrNoFrames = errors.New("mp4source: video has no frames")

	// ErrNoVideoTrack is returned when the container has no video track.
	ErrNoVideoTrack = errors.New("mp4source: no video track found")

	// ErrFrameUnavailable is returned by ReadCurrent for an index outside the video
	// or when the frame cannot be decoded.
	ErrFrameUnavailable = errors.New("mp4source: frame unavailable")

	// ErrFFmpegNotFound is returned when ffmpeg cannot be located.
	ErrFFmpegNotFound = errors.New("mp4source: ffmpeg not found in PATH")

	// ErrFFprobeNotFound is returned when ffprobe cannot be located.
	ErrFFprobeNotFound = errors.New("mp4source: ffprobe not found in PATH")

	// ErrClosed is returned by ReadCurrent after Close.
	ErrClosed = errors.New("mp4source: source closed")
)
