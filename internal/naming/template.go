package naming

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTemplate matches the common SxxExx layout most players sort by.
const DefaultTemplate = "S{season:02d}E{episode:02d}"

// Template renders target filenames from season and episode numbers. The
// syntax mirrors the {season:02d} style placeholders users already have in
// their configs: a field name, an optional zero-padded width, and {{ }} as
// brace escapes. Parsing happens once so a bad template fails before any
// directory is listed.
type Template struct {
	raw      string
	segments []segment
}

type segment struct {
	literal string
	field   string
	width   int
	zeroPad bool
}

// ParseTemplate validates and compiles a name template. Templates must
// produce a plain filename, so path separators are rejected outright.
func ParseTemplate(raw string) (*Template, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("name template is empty")
	}
	if strings.ContainsAny(raw, `/\`) {
		return nil, fmt.Errorf("name template must not contain path separators: %q", raw)
	}

	t := &Template{raw: raw}
	var literal strings.Builder

	for i := 0; i < len(raw); {
		c := raw[i]
		switch {
		case c == '{' && i+1 < len(raw) && raw[i+1] == '{':
			literal.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(raw) && raw[i+1] == '}':
			literal.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(raw[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unclosed placeholder at offset %d in template %q", i, raw)
			}
			seg, err := parsePlaceholder(raw[i+1 : i+end])
			if err != nil {
				return nil, fmt.Errorf("template %q: %w", raw, err)
			}
			if literal.Len() > 0 {
				t.segments = append(t.segments, segment{literal: literal.String()})
				literal.Reset()
			}
			t.segments = append(t.segments, seg)
			i += end + 1
		case c == '}':
			return nil, fmt.Errorf("stray '}' at offset %d in template %q", i, raw)
		default:
			literal.WriteByte(c)
			i++
		}
	}
	if literal.Len() > 0 {
		t.segments = append(t.segments, segment{literal: literal.String()})
	}

	hasField := false
	for _, seg := range t.segments {
		if seg.field != "" {
			hasField = true
			break
		}
	}
	if !hasField {
		return nil, fmt.Errorf("template %q has no {season} or {episode} placeholder", raw)
	}
	return t, nil
}

func parsePlaceholder(body string) (segment, error) {
	name, spec, hasSpec := strings.Cut(body, ":")
	if name != "season" && name != "episode" {
		return segment{}, fmt.Errorf("unknown placeholder %q", name)
	}
	seg := segment{field: name}
	if !hasSpec {
		return seg, nil
	}

	if !strings.HasSuffix(spec, "d") {
		return segment{}, fmt.Errorf("unsupported format spec %q for %q, only integer specs like 02d work", spec, name)
	}
	digits := strings.TrimSuffix(spec, "d")
	if digits == "" {
		return seg, nil
	}
	if strings.HasPrefix(digits, "0") {
		seg.zeroPad = true
	}
	width, err := strconv.Atoi(digits)
	if err != nil || width < 0 {
		return segment{}, fmt.Errorf("bad width %q in format spec for %q", digits, name)
	}
	seg.width = width
	return seg, nil
}

// Render produces the filename stem for one episode, without extension.
func (t *Template) Render(season, episode int) string {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.field == "" {
			b.WriteString(seg.literal)
			continue
		}
		v := season
		if seg.field == "episode" {
			v = episode
		}
		switch {
		case seg.zeroPad:
			fmt.Fprintf(&b, "%0*d", seg.width, v)
		case seg.width > 0:
			fmt.Fprintf(&b, "%*d", seg.width, v)
		default:
			b.WriteString(strconv.Itoa(v))
		}
	}
	return b.String()
}

// FileName appends the source file's extension verbatim. Extensions keep
// their original case; only the stem is rewritten.
func (t *Template) FileName(season, episode int, ext string) string {
	return t.Render(season, episode) + ext
}

func (t *Template) String() string {
	return t.raw
}
