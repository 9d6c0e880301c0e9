package mp4source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"
)

// Info describes the video stream of a file.
type Info struct {
	Codec     string  // Sample entry type ("avc1", "hvc1", ...) or ffprobe codec name
	Width     int     // Coded width in pixels
	Height    int     // Coded height in pixels
	Frames    int     // Number of video frames
	Framerate float64 // Frames per second; 0 when unknown
	Duration  float64 // Seconds

	// Times holds the presentation time of each frame in seconds, relative to
	// the first presented frame, in display order. Empty when the container
	// could not be indexed; frames are then assumed to be evenly spaced.
	Times []float64
}

// SeekTime returns the ffmpeg seek position for frame index. The position
// falls halfway between the previous frame and the requested one so that
// timestamp rounding never lands on a neighbour.
func (i Info) SeekTime(index int) float64 {
	var t, prev float64
	switch {
	case index < len(i.Times):
		t = i.Times[index]
		if index > 0 {
			prev = i.Times[index-1]
		}
	case i.Framerate > 0:
		t = float64(index) / i.Framerate
		prev = float64(index-1) / i.Framerate
	default:
		return 0
	}
	if index == 0 {
		return 0
	}
	return t - (t-prev)/2
}

// ProbeMP4 reads the video track of an MP4/MOV container.
func ProbeMP4(r io.ReadSeeker) (Info, error) {
	f, err := mp4.DecodeFile(r)
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	if f.IsFragmented() {
		return probeFragmented(f)
	}
	return probeProgressive(f)
}

func videoTrak(moov *mp4.MoovBox) *mp4.TrakBox {
	if moov == nil {
		return nil
	}
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

// describeTrak fills codec and dimensions from the sample description.
func describeTrak(trak *mp4.TrakBox, info *Info) {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Codec = vse.Type()
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
			return
		}
	}
}

func timescaleOf(trak *mp4.TrakBox) uint32 {
	if trak.Mdia != nil && trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
		return trak.Mdia.Mdhd.Timescale
	}
	return 1000
}

func probeProgressive(f *mp4.File) (Info, error) {
	trak := videoTrak(f.Moov)
	if trak == nil {
		return Info{}, ErrNoVideoTrack
	}

	var info Info
	describeTrak(trak, &info)

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsz == nil {
		return Info{}, fmt.Errorf("no sample table found")
	}
	stbl := trak.Mdia.Minf.Stbl
	count := stbl.Stsz.SampleNumber

	pts := make([]int64, 0, count)
	var total uint64
	for nr := uint32(1); nr <= count; nr++ {
		var decodeTime uint64
		var dur uint32
		if stbl.Stts != nil {
			decodeTime, dur = stbl.Stts.GetDecodeTime(nr)
		}
		var offset int32
		if stbl.Ctts != nil {
			offset = stbl.Ctts.GetCompositionTimeOffset(nr)
		}
		pts = append(pts, int64(decodeTime)+int64(offset))
		total += uint64(dur)
	}

	fillTimes(&info, pts, total, timescaleOf(trak))
	return info, nil
}

func probeFragmented(f *mp4.File) (Info, error) {
	if f.Init == nil {
		return Info{}, ErrNoVideoTrack
	}
	trak := videoTrak(f.Init.Moov)
	if trak == nil {
		return Info{}, ErrNoVideoTrack
	}
	trackID := trak.Tkhd.TrackID

	var info Info
	describeTrak(trak, &info)

	var trex *mp4.TrexBox
	if f.Init.Moov.Mvex != nil {
		for _, t := range f.Init.Moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var pts []int64
	var total uint64
	for _, seg := range f.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			samples, err := frag.GetFullSamples(trex)
			if err != nil {
				return Info{}, fmt.Errorf("get samples: %w", err)
			}
			for _, s := range samples {
				pts = append(pts, int64(s.DecodeTime)+int64(s.CompositionTimeOffset))
				total += uint64(s.Dur)
			}
		}
	}

	fillTimes(&info, pts, total, timescaleOf(trak))
	return info, nil
}

// fillTimes converts sample presentation times to display-ordered seconds.
func fillTimes(info *Info, pts []int64, totalDur uint64, timescale uint32) {
	info.Frames = len(pts)
	if len(pts) == 0 {
		return
	}

	sort.Slice(pts, func(a, b int) bool { return pts[a] < pts[b] })
	first := pts[0]
	info.Times = make([]float64, len(pts))
	for i, p := range pts {
		info.Times[i] = float64(p-first) / float64(timescale)
	}

	info.Duration = float64(totalDur) / float64(timescale)
	if info.Duration > 0 {
		info.Framerate = float64(len(pts)) / info.Duration
	}
}

// ffprobeOutput is the subset of `ffprobe -of json` this package reads.
type ffprobeOutput struct {
	Streams []struct {
		CodecName     string `json:"codec_name"`
		Width         int    `json:"width"`
		Height        int    `json:"height"`
		RFrameRate    string `json:"r_frame_rate"`
		AvgFrameRate  string `json:"avg_frame_rate"`
		NbFrames      string `json:"nb_frames"`
		NbReadPackets string `json:"nb_read_packets"`
		Duration      string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeFFprobe asks ffprobe for the first video stream of path. It is used
// for containers mp4ff cannot read.
func ProbeFFprobe(ctx context.Context, ffprobePath, path string) (Info, error) {
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-count_packets",
		"-show_entries", "stream=codec_name,width,height,r_frame_rate,avg_frame_rate,nb_frames,nb_read_packets,duration:format=duration",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Info{}, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Info{}, fmt.Errorf("ffprobe: %w", err)
	}
	return parseFFprobe(out)
}

func parseFFprobe(out []byte) (Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return Info{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return Info{}, ErrNoVideoTrack
	}
	s := probe.Streams[0]

	info := Info{
		Codec:  s.CodecName,
		Width:  s.Width,
		Height: s.Height,
	}

	info.Framerate = parseRate(s.AvgFrameRate)
	if info.Framerate == 0 {
		info.Framerate = parseRate(s.RFrameRate)
	}

	info.Duration, _ = strconv.ParseFloat(s.Duration, 64)
	if info.Duration == 0 {
		info.Duration, _ = strconv.ParseFloat(probe.Format.Duration, 64)
	}

	if n, err := strconv.Atoi(s.NbFrames); err == nil && n > 0 {
		info.Frames = n
	} else if n, err := strconv.Atoi(s.NbReadPackets); err == nil && n > 0 {
		info.Frames = n
	} else if info.Duration > 0 && info.Framerate > 0 {
		info.Frames = int(info.Duration * info.Framerate)
	}

	return info, nil
}

// parseRate parses an ffprobe rational such as "30000/1001".
// Returns 0 for "0/0" and malformed values.
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

// probeFile tries mp4ff first and falls back to ffprobe.
func probeFile(ctx context.Context, path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	info, mp4Err := ProbeMP4(f)
	f.Close()
	if mp4Err == nil {
		return info, nil
	}

	ffprobePath, err := FindFFprobe()
	if err != nil {
		return Info{}, fmt.Errorf("probe %s: %w (ffprobe fallback: %v)", path, mp4Err, err)
	}
	info, err = ProbeFFprobe(ctx, ffprobePath, path)
	if err != nil {
		return Info{}, fmt.Errorf("probe %s: %w", path, err)
	}
	return info, nil
}
