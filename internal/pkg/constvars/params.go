package constvars

const (
	URLParamID = "id"
)

const (
	QueryParamStatus      = "status"
	QueryParamDateFrom    = "dateFrom"
	QueryParamDateTo      = "dateTo"
	QueryParamDoctorID    = "doctorId"
	QueryParamDate        = "date"
	QueryParamSpecialtyID = "specialtyId"
	QueryParamClinicID    = "clinicId"
	QueryParamSearch      = "q"
	QueryParamAvailable   = "available"
	QueryParamLatitude    = "lat"
	QueryParamLongitude   = "lng"
	QueryParamRadiusKm    = "radiusKm"
)
