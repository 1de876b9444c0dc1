package analytics

import "math"

// TrendDirection is the coarse movement of a bucketed series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// SeriesPoint is one (period, value) pair of a bucketed series.
type SeriesPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// Trend carries direction plus the percentage change between the two halves
// of the series, for narrative text like "spending down 30%".
type Trend struct {
	Direction     TrendDirection `json:"direction"`
	ChangePercent float64        `json:"change_percent"`
}

// DefaultTrendTolerance is the relative band within which a series counts as
// stable.
const DefaultTrendTolerance = 0.05

// TrendOf compares the mean of the first half of the series against the mean
// of the second half. Changes within ±tolerance (relative) are stable, as is
// any series too short to split.
func TrendOf(series []SeriesPoint, tolerance float64) Trend {
	if tolerance <= 0 {
		tolerance = DefaultTrendTolerance
	}
	if len(series) < 2 {
		return Trend{Direction: TrendStable}
	}

	half := len(series) / 2
	first := meanOf(series[:half])
	second := meanOf(series[len(series)-half:])

	var change float64
	switch {
	case first != 0:
		change = (second - first) / math.Abs(first)
	case second != 0:
		change = math.Inf(1) // from zero to something
	}

	t := Trend{ChangePercent: round1(change * 100)}
	switch {
	case math.IsInf(change, 1) || change > tolerance:
		t.Direction = TrendIncreasing
		if math.IsInf(change, 1) {
			t.ChangePercent = 100
		}
	case change < -tolerance:
		t.Direction = TrendDecreasing
	default:
		t.Direction = TrendStable
	}
	return t
}

// Forecast is the backlog-clearance projection. Exactly one of the three
// shapes holds: insufficient data, never clears, or an ETA.
type Forecast struct {
	InsufficientData bool `json:"insufficient_data,omitempty"`
	Never            bool `json:"never,omitempty"`
	Months           int  `json:"months,omitempty"`
	ETA              Date `json:"eta,omitzero"`
}

// ForecastCompletion projects when the backlog clears given monthly
// acquisition and completion rates. A completion rate at or below the
// acquisition rate means the backlog never clears; that is a legitimate
// terminal answer, not an error, so it comes back as the Never sentinel
// instead of overflowing into infinity.
func ForecastCompletion(acquisitionPerMonth, completionPerMonth float64, backlogSize int, now Date) Forecast {
	if backlogSize <= 0 {
		return Forecast{Months: 0, ETA: now}
	}
	net := completionPerMonth - acquisitionPerMonth
	if net <= 0 {
		return Forecast{Never: true}
	}
	months := int(math.Ceil(float64(backlogSize) / net))
	return Forecast{Months: months, ETA: now.AddMonths(months)}
}

// TrailingMonthlyRate averages per-month occurrence counts over the trailing
// windowMonths calendar months ending at asOf's month (inclusive). The bool
// is false when the window is empty, so callers short-circuit to an
// insufficient-data answer instead of dividing by zero.
func TrailingMonthlyRate(dates []Date, asOf Date, windowMonths int) (float64, bool) {
	if windowMonths <= 0 {
		return 0, false
	}
	windowStart := Date{Year: asOf.Year, Month: asOf.Month, Day: 1}.AddMonths(-(windowMonths - 1))
	total := 0
	for _, d := range dates {
		if d.Before(windowStart) || d.After(asOf) {
			continue
		}
		total++
	}
	return float64(total) / float64(windowMonths), true
}

func meanOf(points []SeriesPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += p.Value
	}
	return sum / float64(len(points))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
