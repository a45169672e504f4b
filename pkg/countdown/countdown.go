// Package countdown derives a days/hours/minutes/seconds breakdown for a
// target date and drives the once-per-second ticking behind the countdown
// widget.
package countdown

import "time"

// Snapshot is the time remaining until (or elapsed since) the target date.
type Snapshot struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	IsPast  bool `json:"isPast"`
}

// Remaining computes the floor-divided bucket breakdown of the absolute
// difference between now and target. IsPast is true when target < now.
func Remaining(target, now time.Time) Snapshot {
	diff := target.Sub(now)
	past := diff < 0
	if past {
		diff = -diff
	}

	total := int(diff / time.Second)
	return Snapshot{
		Days:    total / 86400,
		Hours:   (total % 86400) / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
		IsPast:  past,
	}
}
