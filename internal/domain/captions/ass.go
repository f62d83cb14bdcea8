package captions

import (
	"fmt"
	"strings"
	"time"

	"github.com/forPelevin/ytshorts/internal/types"
)

// Style is the single named V4+ style every dialogue line uses.
type Style struct {
	Name     string
	Font     string
	Size     int
	Primary  string
	Back     string
	Bold     bool
	Outline  int
	Shadow   int
	MarginV  int
	MarginLR int
}

// DefaultStyle is bold white Arial 36 on a black outline, bottom centre.
func DefaultStyle() Style {
	return Style{
		Name:     "Default",
		Font:     "Arial",
		Size:     36,
		Primary:  "&H00FFFFFF",
		Back:     "&H00000000",
		Bold:     true,
		Outline:  2,
		Shadow:   1,
		MarginV:  30,
		MarginLR: 20,
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if strings.TrimSpace(s.Name) == "" {
		s.Name = d.Name
	}
	if strings.TrimSpace(s.Font) == "" {
		s.Font = d.Font
	}
	if s.Size <= 0 {
		s.Size = d.Size
	}
	if s.Primary == "" {
		s.Primary = d.Primary
	}
	if s.Back == "" {
		s.Back = d.Back
	}
	return s
}

// Serialize renders lines as an ASS document for ffmpeg's subtitles filter.
func Serialize(lines []types.CaptionLine, st Style) string {
	st = st.withDefaults()
	var b strings.Builder
	b.WriteString(assHeader(st))
	b.WriteString("\n\n[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, ln := range lines {
		b.WriteString("Dialogue: 0,")
		b.WriteString(assTime(seconds(ln.Start)))
		b.WriteString(",")
		b.WriteString(assTime(seconds(ln.End)))
		b.WriteString(",")
		b.WriteString(st.Name)
		b.WriteString(",,0,0,0,,")
		b.WriteString(sanitizeASS(ln.Text))
		b.WriteString("\n")
	}
	return b.String()
}

func assHeader(st Style) string {
	bold := 0
	if st.Bold {
		bold = -1
	}
	return strings.TrimSpace(fmt.Sprintf(`
[Script Info]
Title: Captions
ScriptType: v4.00+
PlayResX: 1280
PlayResY: 720
WrapStyle: 2
ScaledBorderAndShadow: yes

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, BackColour, Bold, Italic, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: %s,%s,%d,%s,%s,%d,0,1,%d,%d,2,%d,%d,%d,1
`, st.Name, st.Font, st.Size, st.Primary, st.Back, bold, st.Outline, st.Shadow, st.MarginLR, st.MarginLR, st.MarginV))
}

func assTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hs := int(d / time.Hour)
	d -= time.Duration(hs) * time.Hour
	ms := int(d / time.Minute)
	d -= time.Duration(ms) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	cs := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("%d:%02d:%02d.%02d", hs, ms, s, cs)
}

func sanitizeASS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	return strings.TrimSpace(s)
}

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }
