package dto

import "time"

type BookingListDTO struct {
	ID           uint      `json:"id"`
	Reference    string    `json:"reference"`
	Date         time.Time `json:"date"`
	TimeSlot     string    `json:"time_slot"`
	Status       string    `json:"status"`
	FacilityName string    `json:"facility_name"`
	CourtName    string    `json:"court_name"`
	SportType    string    `json:"sport_type"`
}
