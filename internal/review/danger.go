package review

// Danger is the ordered risk classification of a review. Higher values are
// more urgent and sort first in reports.
type Danger int

const (
	DangerNormal Danger = iota
	DangerModerate
	DangerConsiderable
	DangerHigh
	DangerVeryHigh
)

func (d Danger) String() string {
	switch d {
	case DangerModerate:
		return "moderate"
	case DangerConsiderable:
		return "considerable"
	case DangerHigh:
		return "high"
	case DangerVeryHigh:
		return "veryhigh"
	default:
		return "normal"
	}
}

// Age and score thresholds feeding Classify. The contract is monotonicity,
// not these exact cutoffs; they exist to make the function total and the
// tests concrete.
const (
	ageStale   = 14  // two weeks without movement
	ageOld     = 60  // two months
	ageAncient = 180 // half a year
)

func agePoints(ageDays int) int {
	switch {
	case ageDays >= ageAncient:
		return 3
	case ageDays >= ageOld:
		return 2
	case ageDays >= ageStale:
		return 1
	default:
		return 0
	}
}

func scorePoints(score int) int {
	switch {
	case score <= -2:
		return 2
	case score < 0:
		return 1
	default:
		return 0
	}
}

// Classify computes the danger level from age, score and the WIP flag.
// Increasing age with fixed score never lowers the result, and lowering the
// score with fixed age never lowers it either. WIP reviews are
// intentionally unfinished and are capped at DangerModerate.
func Classify(ageDays, score int, wip bool) Danger {
	pts := agePoints(ageDays) + scorePoints(score)
	if pts > int(DangerVeryHigh) {
		pts = int(DangerVeryHigh)
	}
	d := Danger(pts)
	if wip && d > DangerModerate {
		d = DangerModerate
	}
	return d
}
