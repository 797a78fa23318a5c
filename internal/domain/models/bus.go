package models

const (
	BusStatusActive   = "active"
	BusStatusInactive = "inactive"
)

type Bus struct {
	BusID         int64   `json:"busId"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Via           string  `json:"via"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Cost          float64 `json:"cost"`
	Status        string  `json:"status"`
}

// PublicBus is the reduced projection served to non-admin callers.
type PublicBus struct {
	BusID         int64   `json:"busId"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Via           string  `json:"via"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Cost          float64 `json:"cost"`
}

func (b Bus) ToPublic() PublicBus {
	return PublicBus{
		BusID:         b.BusID,
		Origin:        b.Origin,
		Destination:   b.Destination,
		Via:           b.Via,
		DepartureTime: b.DepartureTime,
		ArrivalTime:   b.ArrivalTime,
		Cost:          b.Cost,
	}
}
