// Package naming parses episode numbers out of TV episode filenames and
// renders replacement names from a user-supplied template.
package naming

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// EpisodeInfo is the parse result for a single filename. Pattern names the
// recognizer that produced the match and only matters for debug output.
type EpisodeInfo struct {
	Season  int
	Episode int
	Pattern string
}

// Parser extracts season and episode numbers from filenames. Recognizers are
// tried in a fixed order and the first hit wins; filenames that carry an
// episode number but no season fall back to defaultSeason.
type Parser struct {
	defaultSeason int
}

func NewParser(defaultSeason int) *Parser {
	if defaultSeason < 1 {
		defaultSeason = 1
	}
	return &Parser{defaultSeason: defaultSeason}
}

// Word boundaries are spelled out as character classes instead of \b because
// RE2 counts '_' as a word character, which would reject names like
// Show_S02_E11 that underscore-separated releases use everywhere.
var (
	seasonEpisodeRegex = regexp.MustCompile(`(?i)S(\d{1,2})[._ -]?E(\d{1,2})(?:\D|$)`)
	cjkSeasonRegex     = regexp.MustCompile(`第\s*([0-9零一二两三四五六七八九十百]+)\s*季`)
	cjkEpisodeRegex    = regexp.MustCompile(`第\s*([0-9零一二两三四五六七八九十百]+)\s*[集話话]`)
	epPrefixRegex      = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])EP\s*(\d{1,3})(?:\D|$)`)
	bareEpisodeRegex   = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])E(\d{2,3})(?:\D|$)`)
	suffixEpisodeRegex = regexp.MustCompile(`(?:^|[^0-9])(\d{2,3})\s*[集話话]`)
	seasonWordRegex    = regexp.MustCompile(`(?i)(?:^|[^a-z0-9])Season[\s._-]*(\d{1,2})[\s._-]*Episode[\s._-]*(\d{1,3})(?:\D|$)`)
	crossRegex         = regexp.MustCompile(`(?:^|[^0-9])(\d{1,2})[xX](\d{2,3})(?:[^0-9]|$)`)
)

type recognizer struct {
	name  string
	match func(name string, defaultSeason int) (EpisodeInfo, bool)
}

// Order matters: earlier recognizers are more specific. SxxExx always wins
// over a bare episode token, and the CJK form wins over a trailing "NN集".
var recognizers = []recognizer{
	{"SxxExx", matchSeasonEpisode},
	{"第N季第N集", matchCJKEpisode},
	{"EP-prefix", matchEPPrefix},
	{"NN集", matchSuffixEpisode},
	{"Season-Episode", matchSeasonWord},
	{"NxNN", matchCross},
}

// Parse extracts episode numbering from filename. The extension is ignored
// and full-width digits are folded to ASCII before matching, so 第０１集 and
// 第01集 parse identically. A match with episode zero is treated as a miss,
// letting later recognizers have a go.
func (p *Parser) Parse(filename string) (EpisodeInfo, bool) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	folded := width.Fold.String(base)

	for _, rec := range recognizers {
		info, ok := rec.match(folded, p.defaultSeason)
		if !ok || info.Episode == 0 {
			continue
		}
		info.Pattern = rec.name
		return info, true
	}
	return EpisodeInfo{}, false
}

func matchSeasonEpisode(name string, _ int) (EpisodeInfo, bool) {
	m := seasonEpisodeRegex.FindStringSubmatch(name)
	if m == nil {
		return EpisodeInfo{}, false
	}
	season, _ := strconv.Atoi(m[1])
	episode, _ := strconv.Atoi(m[2])
	return EpisodeInfo{Season: season, Episode: episode}, true
}

func matchCJKEpisode(name string, defaultSeason int) (EpisodeInfo, bool) {
	m := cjkEpisodeRegex.FindStringSubmatch(name)
	if m == nil {
		return EpisodeInfo{}, false
	}
	episode, ok := parseNumber(m[1])
	if !ok {
		return EpisodeInfo{}, false
	}
	season := defaultSeason
	if sm := cjkSeasonRegex.FindStringSubmatch(name); sm != nil {
		if n, ok := parseNumber(sm[1]); ok {
			season = n
		}
	}
	return EpisodeInfo{Season: season, Episode: episode}, true
}

func matchEPPrefix(name string, defaultSeason int) (EpisodeInfo, bool) {
	m := epPrefixRegex.FindStringSubmatch(name)
	if m == nil {
		// Bare E needs two digits so names like Se7en stay unrecognized.
		m = bareEpisodeRegex.FindStringSubmatch(name)
	}
	if m == nil {
		return EpisodeInfo{}, false
	}
	episode, _ := strconv.Atoi(m[1])
	return EpisodeInfo{Season: defaultSeason, Episode: episode}, true
}

func matchSuffixEpisode(name string, defaultSeason int) (EpisodeInfo, bool) {
	m := suffixEpisodeRegex.FindStringSubmatch(name)
	if m == nil {
		return EpisodeInfo{}, false
	}
	episode, _ := strconv.Atoi(m[1])
	return EpisodeInfo{Season: defaultSeason, Episode: episode}, true
}

func matchSeasonWord(name string, _ int) (EpisodeInfo, bool) {
	m := seasonWordRegex.FindStringSubmatch(name)
	if m == nil {
		return EpisodeInfo{}, false
	}
	season, _ := strconv.Atoi(m[1])
	episode, _ := strconv.Atoi(m[2])
	return EpisodeInfo{Season: season, Episode: episode}, true
}

func matchCross(name string, _ int) (EpisodeInfo, bool) {
	m := crossRegex.FindStringSubmatch(name)
	if m == nil {
		return EpisodeInfo{}, false
	}
	season, _ := strconv.Atoi(m[1])
	episode, _ := strconv.Atoi(m[2])
	return EpisodeInfo{Season: season, Episode: episode}, true
}

var videoExts = map[string]struct{}{
	".mp4": {}, ".mkv": {}, ".avi": {}, ".mov": {}, ".wmv": {},
	".flv": {}, ".webm": {}, ".m4v": {}, ".ts": {}, ".rmvb": {},
}

// IsVideoFile reports whether name carries a known video extension. The
// check is case-insensitive but the extension itself is never rewritten.
func IsVideoFile(name string) bool {
	_, ok := videoExts[strings.ToLower(filepath.Ext(name))]
	return ok
}
