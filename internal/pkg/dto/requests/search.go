package requests

type DoctorSearchQuery struct {
	SpecialtyID   string `json:"specialtyId,omitempty" validate:"omitempty,uuid"`
	ClinicID      string `json:"clinicId,omitempty" validate:"omitempty,uuid"`
	Query         string `json:"q,omitempty" validate:"omitempty,max=100"`
	AvailableOnly bool   `json:"available,omitempty"`
	Pagination
}

type ClinicSearchQuery struct {
	Latitude  *float64 `json:"lat,omitempty" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude *float64 `json:"lng,omitempty" validate:"required_with=Latitude,omitempty,longitude"`
	RadiusKm  float64  `json:"radiusKm,omitempty" validate:"omitempty,gt=0,lte=500"`
	Query     string   `json:"q,omitempty" validate:"omitempty,max=100"`
}

// HasLocation reports whether the search should be distance based.
func (q *ClinicSearchQuery) HasLocation() bool {
	return q.Latitude != nil && q.Longitude != nil
}
