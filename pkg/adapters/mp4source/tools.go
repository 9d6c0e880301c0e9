package mp4source

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

var (
	toolMu            sync.RWMutex
	customFFmpegPath  string
	customFFprobePath string
)

// SetFFmpegPath sets a custom path for the ffmpeg executable.
// An empty path restores discovery on PATH and common locations.
func SetFFmpegPath(path string) {
	toolMu.Lock()
	defer toolMu.Unlock()
	customFFmpegPath = path
}

// SetFFprobePath sets a custom path for the ffprobe executable.
func SetFFprobePath(path string) {
	toolMu.Lock()
	defer toolMu.Unlock()
	customFFprobePath = path
}

// FindFFmpeg searches for ffmpeg.
// Priority: 1) custom path (SetFFmpegPath), 2) PATH, 3) common locations.
func FindFFmpeg() (string, error) {
	toolMu.RLock()
	custom := customFFmpegPath
	toolMu.RUnlock()
	return findTool("ffmpeg", custom, ErrFFmpegNotFound)
}

// FindFFprobe searches for ffprobe the same way FindFFmpeg does.
func FindFFprobe() (string, error) {
	toolMu.RLock()
	custom := customFFprobePath
	toolMu.RUnlock()
	return findTool("ffprobe", custom, ErrFFprobeNotFound)
}

func findTool(name, custom string, notFound error) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", notFound, custom)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	for _, p := range commonLocations(execName) {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", notFound
}

func commonLocations(execName string) []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin\` + execName,
			`C:\Program Files\ffmpeg\bin\` + execName,
			`C:\Program Files (x86)\ffmpeg\bin\` + execName,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/" + execName,
			"/usr/local/bin/" + execName,
			"/usr/bin/" + execName,
		}
	default:
		return []string{
			"/usr/bin/" + execName,
			"/usr/local/bin/" + execName,
			"/snap/bin/" + execName,
		}
	}
}
