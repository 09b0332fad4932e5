package domain

var (
	MessageSuccessGetMatches            = "matches retrieved successfully"
	MessageSuccessGetAvailablePickups   = "available pickups retrieved successfully"
	MessageFailedGetMatches             = "failed to retrieve matches"
	MessageFailedGetAvailablePickups    = "failed to retrieve available pickups"
	MessageSuccessGetVolunteerDonations = "assigned donations retrieved successfully"
	MessageFailedGetVolunteerDonations  = "failed to retrieve assigned donations"
)

type (
	GetMatchesRequest struct {
		Latitude  float64 `json:"latitude" validate:"required,latitude"`
		Longitude float64 `json:"longitude" validate:"required,longitude"`
	}

	GetAvailablePickupsRequest struct {
		Latitude    float64 `json:"latitude" validate:"required,latitude"`
		Longitude   float64 `json:"longitude" validate:"required,longitude"`
		MaxDistance float64 `json:"max_distance" validate:"omitempty,min=0"`
	}

	// RankedDonation annotates a donation with its distance from the
	// requester and the 0-100+ match score.
	RankedDonation struct {
		Donation   *Donation `json:"donation"`
		DistanceKm float64   `json:"distance_km"`
		MatchScore float64   `json:"match_score"`
	}

	// PickupCandidate is the volunteer view: distance-filtered, no score.
	PickupCandidate struct {
		Donation   *Donation `json:"donation"`
		DistanceKm float64   `json:"distance_km"`
	}
)
