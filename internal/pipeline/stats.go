package pipeline

import (
	"time"

	"github.com/zygboom-max/tv-rename-tool/internal/planner"
)

// Statistics summarizes one scan/execute run. Counts cover every video
// file the scan considered; the two durations are measured separately
// for the scan phase and the rename phase.
type Statistics struct {
	TotalScanned int
	Recognized   int
	Renamed      int
	Skipped      int
	Unrecognized int
	Conflicts    int
	Failed       int

	ScanDuration   time.Duration
	RenameDuration time.Duration
}

// Collect tallies the plan's statuses. Run before execution it yields
// the preview numbers; run after, the Executed and Failed items land
// under Renamed and Failed.
func Collect(p *planner.Plan) Statistics {
	s := Statistics{TotalScanned: len(p.Items)}
	for i := range p.Items {
		switch p.Items[i].Status {
		case planner.StatusMatched:
			s.Recognized++
		case planner.StatusAlreadyCorrect:
			s.Recognized++
			s.Skipped++
		case planner.StatusUnrecognized:
			s.Unrecognized++
		case planner.StatusConflict:
			s.Recognized++
			s.Conflicts++
		case planner.StatusExecuted:
			s.Recognized++
			s.Renamed++
		case planner.StatusFailed:
			s.Recognized++
			s.Failed++
		}
	}
	return s
}
