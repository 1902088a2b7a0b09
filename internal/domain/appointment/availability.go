package appointment

type AvailabilityInput struct {
	BarbershopID string
	BarberID     string
	ServiceID    string
	Date         string
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
