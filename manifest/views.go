package manifest

// PassengerSummary is the projection returned by PassengersForFlight.
type PassengerSummary struct {
	PassengerID string `json:"passengerId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	BookingID   string `json:"bookingId"`
}

// FlightInfo is a flight summary inside PassengerDetails. Bookings is
// always empty in this projection; nesting the booking graph back into
// each flight would only duplicate what the caller already has.
type FlightInfo struct {
	FlightNumber     string   `json:"flightNumber"`
	DepartureAirport string   `json:"departureAirport"`
	ArrivalAirport   string   `json:"arrivalAirport"`
	DepartureDate    string   `json:"departureDate"`
	ArrivalDate      string   `json:"arrivalDate"`
	Bookings         []string `json:"bookings"`
}

// PassengerDetails is the projection returned by PassengerDetails.
type PassengerDetails struct {
	PassengerID string       `json:"passengerId"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Email       string       `json:"email"`
	BookingID   string       `json:"bookingId"`
	Flights     []FlightInfo `json:"flights"`
}
