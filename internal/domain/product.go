package domain

import "time"

type ProductAvailability string

const (
	AvailabilityInStock   ProductAvailability = "In Stock"
	AvailabilityLimited   ProductAvailability = "Limited"
	AvailabilityOnRequest ProductAvailability = "On Request"
)

// ProductCategories is the fixed set of listing categories.
var ProductCategories = []string{
	"Electronics", "Sports", "Books", "Vehicles", "Fashion",
	"Home & Garden", "Tools", "Music", "Gaming", "Outdoor", "Others",
}

func ValidCategory(c string) bool {
	for _, cat := range ProductCategories {
		if cat == c {
			return true
		}
	}
	return false
}

// Product is a rentable listing. ViewCount and RentCount are approximate
// counters maintained with atomic increments; they carry no correctness
// guarantee under concurrent traffic.
type Product struct {
	ID          int32  `json:"id"`
	OwnerID     int32  `json:"owner_id"`
	OwnerName   string `json:"owner_name"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`

	HourlyPriceCents int32 `json:"hourly_price_cents"`
	DailyPriceCents  int32 `json:"daily_price_cents"`

	Availability ProductAvailability `json:"availability"`
	Pickup       string              `json:"pickup"`
	IsActive     bool                `json:"is_active"`

	ViewCount int32 `json:"view_count"`
	RentCount int32 `json:"rent_count"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}
