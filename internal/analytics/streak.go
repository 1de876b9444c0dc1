package analytics

// Streak is the run of consecutive active calendar days ending at (or just
// before) the reference date.
type Streak struct {
	CurrentLength  int  `json:"current_length"`
	LastActiveDate Date `json:"last_active_date,omitzero"`
}

// Drought is a maximal gap between two active days longer than the caller's
// threshold. Start and End are the first and last inactive days of the gap.
type Drought struct {
	Start        Date `json:"start"`
	End          Date `json:"end"`
	LengthInDays int  `json:"length_in_days"`
}

// CurrentStreak counts consecutive active days walking backward from asOf.
// If asOf itself has no activity yet, the scan anchors at the most recent
// active day on or before asOf; a fully inactive day before that still ends
// the streak. Zero sessions means a zero streak.
func CurrentStreak(events []Event, asOf Date) Streak {
	days := activeDays(events)

	// Most recent active day on or before asOf.
	anchor := -1
	for i := len(days) - 1; i >= 0; i-- {
		if !days[i].After(asOf) {
			anchor = i
			break
		}
	}
	if anchor == -1 {
		return Streak{}
	}

	length := 1
	for i := anchor; i > 0; i-- {
		if days[i].DaysSince(days[i-1]) != 1 {
			break
		}
		length++
	}
	return Streak{CurrentLength: length, LastActiveDate: days[anchor]}
}

// FindDroughts returns every gap of at least thresholdDays fully inactive
// days between two consecutive active days, in chronological order. A gap
// between active days d1 and d2 spans daysBetween(d1,d2)-1 inactive days.
// Trailing inactivity after the last session is not a drought yet; it has no
// closing active day.
func FindDroughts(events []Event, thresholdDays int) []Drought {
	if thresholdDays < 1 {
		thresholdDays = 1
	}
	days := activeDays(events)

	var droughts []Drought
	for i := 1; i < len(days); i++ {
		gap := days[i].DaysSince(days[i-1]) - 1
		if gap < thresholdDays {
			continue
		}
		droughts = append(droughts, Drought{
			Start:        days[i-1].AddDays(1),
			End:          days[i].AddDays(-1),
			LengthInDays: gap,
		})
	}
	return droughts
}
