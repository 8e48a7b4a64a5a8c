package httpapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
	"github.com/tennispark/booking-platform/internal/service"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, booking.Validationf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}

type bookCourtRequest struct {
	CourtID   string `json:"court_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type updateCourtRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type bookCoachRequest struct {
	CoachID   string `json:"coach_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type updateCoachRequest struct {
	CoachID   string `json:"coach_id,omitempty" validate:"omitempty,uuid"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type templateRuleRequest struct {
	Weekday   string `json:"weekday" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type setTemplatesRequest struct {
	Rules []templateRuleRequest `json:"rules" validate:"required,dive"`
}

type courtResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	HourlyRate string `json:"hourly_rate"`
	Available  bool   `json:"available"`
}

func renderCourt(c model.Court) courtResponse {
	return courtResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Location:   c.Location,
		HourlyRate: c.HourlyRate.StringFixed(2),
		Available:  c.Available,
	}
}

type coachResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Specialty       string `json:"specialty"`
	ExperienceYears int    `json:"experience_years"`
	HourlyRate      string `json:"hourly_rate"`
	Active          bool   `json:"active"`
}

func renderCoach(c model.Coach) coachResponse {
	return coachResponse{
		ID:              c.ID.String(),
		Name:            c.Name,
		Email:           c.Email,
		Specialty:       c.Specialty,
		ExperienceYears: c.ExperienceYears,
		HourlyRate:      c.HourlyRate.StringFixed(2),
		Active:          c.Active,
	}
}

type slotResponse struct {
	ID        string            `json:"id"`
	CoachID   string            `json:"coach_id"`
	Date      string            `json:"date"`
	StartTime booking.ClockTime `json:"start_time"`
	EndTime   booking.ClockTime `json:"end_time"`
	IsBooked  bool              `json:"is_booked"`
}

func renderSlot(s model.Slot) slotResponse {
	return slotResponse{
		ID:        s.ID.String(),
		CoachID:   s.CoachID.String(),
		Date:      formatDate(s.Date),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		IsBooked:  s.IsBooked,
	}
}

type templateResponse struct {
	ID        string            `json:"id"`
	CoachID   string            `json:"coach_id"`
	Weekday   string            `json:"weekday"`
	StartTime booking.ClockTime `json:"start_time"`
	EndTime   booking.ClockTime `json:"end_time"`
}

func renderTemplate(t model.AvailabilityTemplate) templateResponse {
	return templateResponse{
		ID:        t.ID.String(),
		CoachID:   t.CoachID.String(),
		Weekday:   t.Weekday.String(),
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
	}
}

type courtReservationResponse struct {
	ID        string            `json:"id"`
	CourtID   string            `json:"court_id"`
	Date      string            `json:"date"`
	StartTime booking.ClockTime `json:"start_time"`
	EndTime   booking.ClockTime `json:"end_time"`
	Price     string            `json:"price"`
}

func renderCourtBooking(b *service.CourtBooking) courtReservationResponse {
	r := b.Reservation
	return courtReservationResponse{
		ID:        r.ID.String(),
		CourtID:   r.CourtID.String(),
		Date:      formatDate(r.Date),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Price:     b.Price.StringFixed(2),
	}
}

type coachReservationResponse struct {
	ID        string            `json:"id"`
	CoachID   string            `json:"coach_id"`
	Date      string            `json:"date"`
	StartTime booking.ClockTime `json:"start_time"`
	EndTime   booking.ClockTime `json:"end_time"`
	Price     string            `json:"price"`
}

func renderCoachReservation(r *model.CoachReservation) coachReservationResponse {
	return coachReservationResponse{
		ID:        r.ID.String(),
		CoachID:   r.CoachID.String(),
		Date:      formatDate(r.Date),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Price:     r.TotalPrice.StringFixed(2),
	}
}

type eventResponse struct {
	ID            string `json:"id"`
	EventType     string `json:"event_type"`
	ReservationID string `json:"reservation_id,omitempty"`
	Amount        string `json:"amount,omitempty"`
	Details       string `json:"details,omitempty"`
	CreatedAt     string `json:"created_at"`
}

func renderEvent(e model.Event) eventResponse {
	out := eventResponse{
		ID:        e.ID.String(),
		EventType: string(e.EventType),
		Details:   e.Details,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.ReservationID != nil {
		out.ReservationID = e.ReservationID.String()
	}
	if e.Amount.Valid {
		out.Amount = e.Amount.Decimal.StringFixed(2)
	}
	return out
}

type reservationRowResponse struct {
	ID           string            `json:"id"`
	Kind         string            `json:"kind"`
	ResourceID   string            `json:"resource_id"`
	ResourceName string            `json:"resource_name"`
	Date         string            `json:"date"`
	StartTime    booking.ClockTime `json:"start_time"`
	EndTime      booking.ClockTime `json:"end_time"`
	Price        string            `json:"price"`
}

func renderReservationRows(rows []service.UserReservation) []reservationRowResponse {
	out := make([]reservationRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, reservationRowResponse{
			ID:           r.ID.String(),
			Kind:         r.Kind,
			ResourceID:   r.ResourceID.String(),
			ResourceName: r.ResourceName,
			Date:         r.Date.Format(dateLayout),
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			Price:        r.Price.StringFixed(2),
		})
	}
	return out
}
