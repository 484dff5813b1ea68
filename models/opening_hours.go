package models

// TimePoint is one boundary of an opening period, as returned by the
// Places API: day 0-6 with Sunday = 0, plus hour and minute of day.
type TimePoint struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// MinuteOfDay flattens the time point to minutes since midnight.
func (t TimePoint) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

// Period is a single open interval in a weekly schedule. A missing Close
// means the business stays open for the remainder of the day.
type Period struct {
	Open  TimePoint  `json:"open"`
	Close *TimePoint `json:"close,omitempty"`
}

// WeeklySchedule mirrors the regularOpeningHours object of the Places API
// and doubles as the cached schedule representation.
type WeeklySchedule struct {
	Periods []Period `json:"periods"`
}
