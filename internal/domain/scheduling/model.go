package scheduling

// Availability is a window during which a doctor can be booked at one
// location on a given day of the week.
type Availability struct {
	ID            int64  `json:"id"`
	AssociationID int64  `json:"association_id"`
	DoctorID      int64  `json:"doctor_id"`
	LocationID    int64  `json:"location_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	DayOfWeek     string `json:"day_of_week"`
}

type Appointment struct {
	ID            int64  `json:"id"`
	AssociationID int64  `json:"association_id"`
	DoctorID      int64  `json:"doctor_id"`
	LocationID    int64  `json:"location_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	DayOfWeek     string `json:"day_of_week"`
}

// BookingRequest is the payload for both availability and appointment
// creation.
type BookingRequest struct {
	DoctorID   int64  `json:"doctor_id"`
	LocationID int64  `json:"location_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	DayOfWeek  string `json:"day_of_week"`
}
