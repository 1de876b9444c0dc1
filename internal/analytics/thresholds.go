package analytics

// Thresholds are the tuning constants behind every classifier. The values in
// DefaultThresholds are the behavioral contract the dashboard shipped with;
// they are exposed as config precisely so nobody "fixes" them inline.
type Thresholds struct {
	// Session style.
	MinSessions         int     `mapstructure:"min_sessions" validate:"gte=1"`
	MarathonAvgHours    float64 `mapstructure:"marathon_avg_hours" validate:"gt=0"`
	SnackAvgHours       float64 `mapstructure:"snack_avg_hours" validate:"gt=0"`
	WeekendShare        float64 `mapstructure:"weekend_share" validate:"gt=0,lte=1"`
	BingeVariation      float64 `mapstructure:"binge_variation" validate:"gt=0"`
	ConsistentVariation float64 `mapstructure:"consistent_variation" validate:"gt=0"`

	// Rotation health.
	RotationWindowDays  int     `mapstructure:"rotation_window_days" validate:"gte=1"`
	ObsessedWeeklyHours float64 `mapstructure:"obsessed_weekly_hours" validate:"gt=0"`

	// Personality.
	GenreRutShare float64 `mapstructure:"genre_rut_share" validate:"gt=0,lte=1"`
}

// DefaultThresholds returns the shipped constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSessions:         3,
		MarathonAvgHours:    4,
		SnackAvgHours:       1,
		WeekendShare:        0.6,
		BingeVariation:      0.8,
		ConsistentVariation: 0.35,
		RotationWindowDays:  14,
		ObsessedWeeklyHours: 15,
		GenreRutShare:       0.6,
	}
}
