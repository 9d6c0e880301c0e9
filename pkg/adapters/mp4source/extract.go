package mp4source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"
)

// extractFunc decodes the single frame shown at seconds into the video.
type extractFunc func(ctx context.Context, path string, seconds float64) (image.Image, error)

// ffmpegExtractor returns an extractFunc that seeks with -ss and pipes one
// PNG frame to stdout.
func ffmpegExtractor(ffmpegPath string) extractFunc {
	return func(ctx context.Context, path string, seconds float64) (image.Image, error) {
		var stdout, stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, ffmpegPath,
			"-hide_banner",
			"-loglevel", "error",
			"-ss", strconv.FormatFloat(seconds, 'f', 6, 64),
			"-i", path,
			"-frames:v", "1",
			"-f", "image2pipe",
			"-vcodec", "png",
			"-",
		)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			return nil, fmt.Errorf("ffmpeg decode failed: %w\nstderr: %s", err, strings.TrimSpace(stderr.String()))
		}
		if stdout.Len() == 0 {
			return nil, fmt.Errorf("ffmpeg produced no frame at %.3fs", seconds)
		}

		img, err := png.Decode(&stdout)
		if err != nil {
			return nil, fmt.Errorf("decode png: %w", err)
		}
		return img, nil
	}
}
