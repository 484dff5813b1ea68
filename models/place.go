package models

import "fmt"

// PlaceholderName is used when the upstream record carries no display name.
const PlaceholderName = "Local Business"

// PlaceRecord is the resolved, display-ready business record.
// IsOpenNow is tri-state: nil means the upstream source provided no schedule.
type PlaceRecord struct {
	Name             string          `json:"name"`
	FormattedAddress string          `json:"formatted_address,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	IsOpenNow        *bool           `json:"is_open_now"`
	GoogleMapsURL    string          `json:"google_maps_url,omitempty"`
	Schedule         *WeeklySchedule `json:"schedule,omitempty"`
}

// CacheEligible reports whether the record may be written to the cache.
func (p *PlaceRecord) CacheEligible() bool {
	return p.Name != ""
}

func (p *PlaceRecord) ToString() string {
	open := "unknown"
	if p.IsOpenNow != nil {
		open = fmt.Sprintf("%t", *p.IsOpenNow)
	}
	return fmt.Sprintf("PlaceRecord(name=%s, phone=%s, open=%s)", p.Name, p.Phone, open)
}
