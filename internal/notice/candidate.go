package notice

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DraftStateName is the workflow state whose requests never trigger a notice.
const DraftStateName = "Проект"

// Row is the joined notification row resolved for one partner.
type Row struct {
	PartnerID   uuid.UUID
	RequestID   uuid.UUID
	To          string
	PartnerName string
	INN         *string
	KPP         *string
	Validity    time.Time
}

// Candidate is a formatted notification ready for dispatch.
type Candidate struct {
	PartnerID uuid.UUID
	To        string
	Subject   string
	Body      string
	Validity  time.Time
	DaysLeft  int
}

// DedupeKey identifies one notice: the same partner, validity and offset
// never produce two sends while the claim lives.
func (c Candidate) DedupeKey() string {
	return fmt.Sprintf("partner-notice:%s:%s:%d", c.PartnerID, c.Validity.Format("2006-01-02"), c.DaysLeft)
}

// daysBetween counts calendar days from a to b, ignoring clock and zone.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
