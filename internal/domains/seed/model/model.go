package model

// Kind names the dataset section a record came from.
type Kind string

const (
	KindHotel   Kind = "hotel"
	KindRoom    Kind = "room"
	KindGuest   Kind = "guest"
	KindBooking Kind = "booking"
)

// Reason explains why a record was not inserted.
type Reason string

const (
	ReasonAlreadyPresent   Reason = "already_present"
	ReasonInvalidRecord    Reason = "invalid_record"
	ReasonReferenceMissing Reason = "seed_reference_missing"
	ReasonBookingConflict  Reason = "booking_conflict"
	ReasonInvalidDateRange Reason = "invalid_date_range"
)

type Counts struct {
	Inserted int `json:"inserted" yaml:"inserted"`
	Skipped  int `json:"skipped"  yaml:"skipped"`
}

type SkippedRecord struct {
	Kind   Kind   `json:"kind"             yaml:"kind"`
	Index  int    `json:"index"            yaml:"index"`
	Reason Reason `json:"reason"           yaml:"reason"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

type SeedReport struct {
	Hotels   Counts          `json:"hotels"   yaml:"hotels"`
	Rooms    Counts          `json:"rooms"    yaml:"rooms"`
	Guests   Counts          `json:"guests"   yaml:"guests"`
	Bookings Counts          `json:"bookings" yaml:"bookings"`
	Skipped  []SkippedRecord `json:"skipped"  yaml:"skipped"`
}

func (r *SeedReport) counts(kind Kind) *Counts {
	switch kind {
	case KindHotel:
		return &r.Hotels
	case KindRoom:
		return &r.Rooms
	case KindGuest:
		return &r.Guests
	default:
		return &r.Bookings
	}
}

func (r *SeedReport) Inserted(kind Kind) {
	r.counts(kind).Inserted++
}

func (r *SeedReport) Skip(kind Kind, index int, reason Reason, detail string) {
	r.counts(kind).Skipped++
	r.Skipped = append(r.Skipped, SkippedRecord{Kind: kind, Index: index, Reason: reason, Detail: detail})
}

// TotalInserted sums inserted rows over every kind.
func (r *SeedReport) TotalInserted() int {
	return r.Hotels.Inserted + r.Rooms.Inserted + r.Guests.Inserted + r.Bookings.Inserted
}
