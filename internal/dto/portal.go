package dto

type LoginReq struct {
	ApiKey string `json:"api_key" binding:"required"`
}

type TicketReq struct {
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	LockerID    *uint64 `json:"locker_id"`
}

type HostingRequestReq struct {
	CompanyName  string `json:"company_name"`
	PropertyType string `json:"property_type"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
}
