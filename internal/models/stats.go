package models

type MonthlyTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type PackageTotal struct {
	PackageID   uint    `json:"package_id"`
	PackageName string  `json:"package_name"`
	Total       float64 `json:"total"`
	Count       int     `json:"count"`
}

// BookingCounts holds both stored statuses and the derived reporting states.
type BookingCounts struct {
	Total          int                   `json:"total"`
	ByStatus       map[BookingStatus]int `json:"by_status"`
	Upcoming       int                   `json:"upcoming"`
	Completed      int                   `json:"completed"`
	PendingPayment int                   `json:"pending_payment"`
}

type TouristStats struct {
	Email           string         `json:"email"`
	Bookings        BookingCounts  `json:"bookings"`
	TotalSpent      float64        `json:"total_spent"`
	PaymentCount    int            `json:"payment_count"`
	MonthlySpending []MonthlyTotal `json:"monthly_spending"`
	PerPackage      []PackageTotal `json:"per_package"`
}

type TourGuideStats struct {
	Email           string         `json:"email"`
	Bookings        BookingCounts  `json:"bookings"`
	TotalEarned     float64        `json:"total_earned"`
	PaymentCount    int            `json:"payment_count"`
	MonthlyEarnings []MonthlyTotal `json:"monthly_earnings"`
	PerPackage      []PackageTotal `json:"per_package"`
}

type AdminStats struct {
	UsersByRole         map[Role]int   `json:"users_by_role"`
	TotalUsers          int64          `json:"total_users"`
	TotalPackages       int64          `json:"total_packages"`
	TotalStories        int64          `json:"total_stories"`
	PendingApplications int64          `json:"pending_applications"`
	Bookings            BookingCounts  `json:"bookings"`
	TotalRevenue        float64        `json:"total_revenue"`
	PaymentCount        int            `json:"payment_count"`
	MonthlyRevenue      []MonthlyTotal `json:"monthly_revenue"`
	PerPackage          []PackageTotal `json:"per_package"`
}
