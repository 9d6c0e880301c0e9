package summarizer

import (
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/ideamans/go-l10n"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator replaces the label translator. The default uses go-l10n.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: l10n.T}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Review Summary"))
	fmt.Fprintf(&b, "%s: %s\n", t("Generated"), s.GeneratedAt.Format(time.RFC3339))
	if s.SessionID != "" {
		fmt.Fprintf(&b, "%s: `%s`\n", t("Session"), s.SessionID)
	}

	fmt.Fprintf(&b, "\n## %s\n\n", t("Video"))
	f.header(&b)
	f.row(&b, t("File"), s.Video.Path)
	f.row(&b, t("Frame Count"), fmt.Sprintf("%d", s.Video.Frames))
	f.row(&b, t("Framerate"), formatRate(s.Video.Framerate, t))

	fmt.Fprintf(&b, "\n## %s\n\n", t("Playback"))
	f.header(&b)
	f.row(&b, t("Rate"), formatRate(s.Playback.Rate, t))
	f.row(&b, t("Final Position"), fmt.Sprintf("%d", s.Playback.FinalPosition))
	f.row(&b, t("Frames Shown"), fmt.Sprintf("%d", s.Playback.FramesShown))
	f.row(&b, t("Frames Skipped"), fmt.Sprintf("%d", s.Playback.FramesSkipped))
	f.row(&b, t("Seeks"), fmt.Sprintf("%d", s.Playback.Seeks))
	f.row(&b, t("Screenshots"), fmt.Sprintf("%d", s.Playback.Screenshots))

	fmt.Fprintf(&b, "\n## %s\n\n", t("Measurement"))
	f.header(&b)
	f.row(&b, t("Reference Points"), formatPoints(s.Calibration.Points, t))
	f.row(&b, t("Known Road Distance"), fmt.Sprintf("%g m", s.Calibration.KnownRoadMeters))
	if s.Calibration.Calibrated {
		f.row(&b, t("Roadside Hazard Distance"), fmt.Sprintf("%.2f m", s.Calibration.ObjectMeters))
	} else {
		f.row(&b, t("Roadside Hazard Distance"), t("N/A"))
	}

	b.WriteString("\n---\n")
	if f.version != "" {
		fmt.Fprintf(&b, "%s framescope %s\n", t("Generated by"), f.version)
	} else {
		fmt.Fprintf(&b, "%s framescope\n", t("Generated by"))
	}
	return b.String()
}

func (f *MarkdownFormatter) header(b *strings.Builder) {
	fmt.Fprintf(b, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	b.WriteString("|---|---|\n")
}

func (f *MarkdownFormatter) row(b *strings.Builder, item, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", item, value)
}

func formatRate(fps float64, t func(string) string) string {
	if fps <= 0 {
		return t("N/A")
	}
	return fmt.Sprintf("%.2f fps", fps)
}

func formatPoints(points []image.Point, t func(string) string) string {
	if len(points) == 0 {
		return t("None")
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("(%d, %d)", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
