// Package planner turns a directory listing into a rename plan.
//
// Planning is pure: it never touches the backend, so the same listing
// always produces the same plan and the plan doubles as the dry-run
// preview. Only items left in StatusMatched are ever executed.
package planner

import (
	"path/filepath"

	"github.com/zygboom-max/tv-rename-tool/internal/logging"
	"github.com/zygboom-max/tv-rename-tool/internal/naming"
	"github.com/zygboom-max/tv-rename-tool/internal/storage"
)

// Status is the decision recorded for one file. Build assigns the first
// four; the executor later moves Matched items to Executed or Failed.
type Status int

const (
	StatusMatched Status = iota
	StatusAlreadyCorrect
	StatusUnrecognized
	StatusConflict
	StatusExecuted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusAlreadyCorrect:
		return "already correct"
	case StatusUnrecognized:
		return "unrecognized"
	case StatusConflict:
		return "conflict"
	case StatusExecuted:
		return "executed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Item is one file's rename decision.
//
// Target is empty when the name was not recognized. Err is set only
// when the executor marks the item StatusFailed.
type Item struct {
	Source  storage.FileEntry
	Episode naming.EpisodeInfo
	Target  string
	Status  Status
	Err     error
}

// Plan is the full decision set for one directory. Items keep the
// listing order, which is also the execution order.
type Plan struct {
	Dir     string
	Items   []Item
	Ignored int // non-video files passed over during the scan
}

// Matched returns how many items are still queued for renaming.
func (p *Plan) Matched() int {
	n := 0
	for i := range p.Items {
		if p.Items[i].Status == StatusMatched {
			n++
		}
	}
	return n
}

// Planner builds rename plans from directory listings.
type Planner struct {
	parser   *naming.Parser
	template *naming.Template
	log      *logging.Logger
}

func New(parser *naming.Parser, template *naming.Template, log *logging.Logger) *Planner {
	if log == nil {
		log = logging.Nop()
	}
	return &Planner{parser: parser, template: template, log: log}
}

// Build decides an outcome for every video file in entries.
// Subdirectories are skipped, non-video files are counted as ignored.
//
// After the per-file pass, any matched items whose targets collide are
// all downgraded to StatusConflict; a collision never picks a winner.
// A matched item whose target equals the name of an already correct
// file is downgraded the same way, since renaming onto it would clash.
func (p *Planner) Build(dir string, entries []storage.FileEntry) *Plan {
	plan := &Plan{Dir: dir}

	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		if !naming.IsVideoFile(entry.Name) {
			plan.Ignored++
			continue
		}

		item := Item{Source: entry}
		info, ok := p.parser.Parse(entry.Name)
		if !ok {
			item.Status = StatusUnrecognized
			p.log.Debug("planner", "no pattern matched", logging.F("file", entry.Name))
			plan.Items = append(plan.Items, item)
			continue
		}

		item.Episode = info
		item.Target = p.template.FileName(info.Season, info.Episode, filepath.Ext(entry.Name))
		if item.Target == entry.Name {
			item.Status = StatusAlreadyCorrect
		} else {
			item.Status = StatusMatched
		}
		p.log.Debug("planner", "matched",
			logging.F("file", entry.Name),
			logging.F("pattern", info.Pattern),
			logging.F("season", info.Season),
			logging.F("episode", info.Episode),
			logging.F("target", item.Target))
		plan.Items = append(plan.Items, item)
	}

	p.markConflicts(plan)
	return plan
}

// markConflicts downgrades matched items whose target names collide
// with another item in the same directory. An already correct file
// keeps its status: it is not renaming onto anything.
func (p *Planner) markConflicts(plan *Plan) {
	byTarget := make(map[string][]int)
	for i := range plan.Items {
		switch plan.Items[i].Status {
		case StatusMatched, StatusAlreadyCorrect:
			byTarget[plan.Items[i].Target] = append(byTarget[plan.Items[i].Target], i)
		}
	}

	for target, indices := range byTarget {
		if len(indices) < 2 {
			continue
		}
		for _, i := range indices {
			if plan.Items[i].Status != StatusMatched {
				continue
			}
			plan.Items[i].Status = StatusConflict
			p.log.Warn("planner", "target name collision",
				logging.F("file", plan.Items[i].Source.Name),
				logging.F("target", target))
		}
	}
}
