package models

import "time"

// Listing represents one rental unit from a market snapshot.
// Pointer fields are optional: nil means the value was missing or
// unparseable in the source data. After cleaning, ID, Price, Latitude
// and Longitude are guaranteed non-nil.
type Listing struct {
	ID       int64  `json:"id" db:"id"`
	HostID   int64  `json:"host_id" db:"host_id"`
	HostName string `json:"host_name,omitempty" db:"host_name"`

	// Categorical attributes
	Neighborhood string `json:"neighbourhood,omitempty" db:"neighbourhood"`
	RoomType     string `json:"room_type,omitempty" db:"room_type"`
	PropertyType string `json:"property_type,omitempty" db:"property_type"`

	// Coordinates
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	// Pricing. RawPrice holds the source currency string (e.g. "$1,234.56");
	// Price is the parsed nightly rate.
	RawPrice string   `json:"-" db:"-"`
	Price    *float64 `json:"price,omitempty" db:"price"`

	// Capacity
	Accommodates *int     `json:"accommodates,omitempty" db:"accommodates"`
	Bedrooms     *float64 `json:"bedrooms,omitempty" db:"bedrooms"`
	Beds         *float64 `json:"beds,omitempty" db:"beds"`

	// Availability windows (days available in the next N days)
	Availability30  *int `json:"availability_30,omitempty" db:"availability_30"`
	Availability365 *int `json:"availability_365,omitempty" db:"availability_365"`

	// Reviews
	NumberOfReviews int        `json:"number_of_reviews" db:"number_of_reviews"`
	Rating          *float64   `json:"review_scores_rating,omitempty" db:"review_scores_rating"`
	LastReview      *time.Time `json:"last_review,omitempty" db:"last_review"`

	// Letter flags as scraped ("t"/"f") and serialized amenities
	RawSuperhost       string `json:"-" db:"-"`
	RawInstantBookable string `json:"-" db:"-"`
	RawAmenities       string `json:"-" db:"-"`

	// Derived fields, populated by the cleaning pipeline
	PricePerPerson    *float64 `json:"price_per_person,omitempty" db:"price_per_person"`
	EstBooked30       *int     `json:"est_booked_30,omitempty" db:"est_booked_30"`
	EstMonthlyRevenue *float64 `json:"est_monthly_revenue,omitempty" db:"est_monthly_revenue"`
	DaysSinceReview   *int     `json:"days_since_review,omitempty" db:"days_since_review"`
	IsSuperhost       *bool    `json:"is_superhost,omitempty" db:"is_superhost"`
	IsInstantBookable *bool    `json:"is_instant_bookable,omitempty" db:"is_instant_bookable"`
	Amenities         []string `json:"amenities,omitempty" db:"-"`
	AmenityCount      int      `json:"amenity_count" db:"amenity_count"`
}

// FieldSet records which optional columns were present in the source
// snapshot. It is computed once at ingestion so analyzers can check
// capability up front instead of probing individual records.
type FieldSet struct {
	HasHostName        bool `json:"has_host_name"`
	HasCoordinates     bool `json:"has_coordinates"`
	HasAccommodates    bool `json:"has_accommodates"`
	HasBedrooms        bool `json:"has_bedrooms"`
	HasBeds            bool `json:"has_beds"`
	HasAvailability30  bool `json:"has_availability_30"`
	HasAvailability365 bool `json:"has_availability_365"`
	HasRating          bool `json:"has_rating"`
	HasLastReview      bool `json:"has_last_review"`
	HasSuperhost       bool `json:"has_superhost"`
	HasInstantBookable bool `json:"has_instant_bookable"`
	HasAmenities       bool `json:"has_amenities"`
}
