package model

const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
	ReservationCompleted = "completed"
)

var ReservationStatuses = []string{ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted}

type Guest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

type Reservation struct {
	ID              int64     `json:"id"`
	User            *Guest    `json:"user,omitempty"`
	TableID         int64     `json:"table_id"`
	Table           *Named    `json:"table,omitempty"`
	StartDate       Timestamp `json:"start_date"`
	EndDate         Timestamp `json:"end_date"`
	NumberOfGuests  int       `json:"number_of_guests"`
	Status          string    `json:"status"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

func (r Reservation) RecordID() int64 { return r.ID }

// Clone returns a copy that shares no mutable state with r.
func (r Reservation) Clone() Reservation {
	if r.User != nil {
		u := *r.User
		r.User = &u
	}
	if r.Table != nil {
		t := *r.Table
		r.Table = &t
	}
	return r
}

func (r Reservation) Guest() Guest {
	if r.User == nil {
		return Guest{}
	}
	return *r.User
}

func (r Reservation) TableName() string {
	if r.Table == nil {
		return ""
	}
	return r.Table.Name
}
