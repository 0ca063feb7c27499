package booking

type CreateBookingRequest struct {
	ScheduleID     string `json:"schedule_id" binding:"required"`
	CustomerName   string `json:"customer_name" binding:"required"`
	CustomerPhone  string `json:"customer_phone" binding:"required"`
	CustomerEmail  string `json:"customer_email" validate:"omitempty,email"`
	TravelDate     string `json:"travel_date" binding:"required"`
	Passengers     int    `json:"passengers" binding:"required,min=1"`
	PickupAddress  string `json:"pickup_address" binding:"required"`
	DropoffAddress string `json:"dropoff_address"`
	Notes          string `json:"notes"`
}

// OfflineBookingRequest is the admin dialog's payload: a walk-in or phone
// order recorded by staff, optionally already settled in cash.
type OfflineBookingRequest struct {
	CreateBookingRequest
	PaymentStatus string `json:"payment_status" binding:"required,oneof=paid pending"`
}

type ListBookingsQuery struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}
