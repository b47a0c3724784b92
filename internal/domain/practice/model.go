package practice

type Doctor struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Location struct {
	ID      int64  `json:"id"`
	Address string `json:"address"`
}

// Association links a doctor to a location where they practice. Availability
// and appointments hang off an association rather than the raw pair.
type Association struct {
	ID         int64 `json:"id"`
	DoctorID   int64 `json:"doctor_id"`
	LocationID int64 `json:"location_id"`
}

// DoctorPatch carries a partial doctor update; nil fields are left unchanged.
type DoctorPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type LocationPatch struct {
	Address *string `json:"address"`
}
