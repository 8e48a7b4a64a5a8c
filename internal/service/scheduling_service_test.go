package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
)

// futureDate is a weekday far enough ahead that tests never trip the
// past-date gate. 2030-01-07 is a Monday.
var futureDate = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func TestBookCourt_SuccessComputesPrice(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 40)
	ident := playerIdentity()

	got, err := env.scheduling.BookCourt(context.Background(), ident, court.ID, futureDate,
		booking.MustClock("10:00"), booking.MustClock("12:00"))
	if err != nil {
		t.Fatalf("BookCourt: %v", err)
	}
	if want := decimal.NewFromInt(80); !got.Price.Equal(want) {
		t.Errorf("price = %s, want %s", got.Price, want)
	}
	if got.Reservation.UserID == nil || *got.Reservation.UserID != ident.UserID {
		t.Error("reservation not attributed to the caller")
	}
}

func TestBookCourt_HalfHourBillsOneHour(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 40)

	got, err := env.scheduling.BookCourt(context.Background(), playerIdentity(), court.ID, futureDate,
		booking.MustClock("10:00"), booking.MustClock("10:30"))
	if err != nil {
		t.Fatalf("BookCourt: %v", err)
	}
	if want := decimal.NewFromInt(40); !got.Price.Equal(want) {
		t.Errorf("price = %s, want %s", got.Price, want)
	}
}

func TestBookCourt_AnonymousAllowed(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 25)

	got, err := env.scheduling.BookCourt(context.Background(), booking.Identity{Role: booking.RolePlayer},
		court.ID, futureDate, booking.MustClock("08:00"), booking.MustClock("09:00"))
	if err != nil {
		t.Fatalf("BookCourt anonymous: %v", err)
	}
	if got.Reservation.UserID != nil {
		t.Error("anonymous reservation must have no user reference")
	}
}

func TestBookCourt_OverlapConflicts(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 40)
	ctx := context.Background()

	if _, err := env.scheduling.BookCourt(ctx, playerIdentity(), court.ID, futureDate,
		booking.MustClock("10:00"), booking.MustClock("12:00")); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := env.scheduling.BookCourt(ctx, playerIdentity(), court.ID, futureDate,
		booking.MustClock("11:00"), booking.MustClock("13:00"))
	if booking.KindOf(err) != booking.KindConflict {
		t.Errorf("overlapping booking: got %v, want conflict", err)
	}

	// A different court at the same time is unaffected.
	other := seedCourt(t, env.db, 40)
	if _, err := env.scheduling.BookCourt(ctx, playerIdentity(), other.ID, futureDate,
		booking.MustClock("11:00"), booking.MustClock("13:00")); err != nil {
		t.Errorf("disjoint resource blocked: %v", err)
	}
}

func TestBookCourt_ConcurrentIdenticalIntervalOneWinner(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 40)
	ctx := context.Background()

	// Race the same interval several times; every pair must produce
	// exactly one reservation and one conflict.
	starts := []string{"09:00", "10:00", "11:00", "12:00", "13:00"}
	for _, start := range starts {
		from := booking.MustClock(start)
		to := from + 60

		results := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				_, err := env.scheduling.BookCourt(ctx, playerIdentity(), court.ID, futureDate, from, to)
				results <- err
			}()
		}

		var wins, conflicts int
		for i := 0; i < 2; i++ {
			err := <-results
			switch {
			case err == nil:
				wins++
			case booking.KindOf(err) == booking.KindConflict:
				conflicts++
			default:
				t.Fatalf("%s: unexpected error %v", start, err)
			}
		}
		if wins != 1 || conflicts != 1 {
			t.Errorf("%s: wins=%d conflicts=%d, want exactly one of each", start, wins, conflicts)
		}
	}

	var count int64
	env.db.Model(&model.CourtReservation{}).Count(&count)
	if count != int64(len(starts)) {
		t.Errorf("reservation rows = %d, want %d", count, len(starts))
	}
}

// The composite unique index is the backstop for races the overlap
// pre-check cannot see; TranslateError must surface it as
// ErrDuplicatedKey so the services can map it to a conflict.
func TestCourtReservation_DuplicateWindowSurfacesAsDuplicatedKey(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 40)

	row := func() *model.CourtReservation {
		return &model.CourtReservation{
			CourtID:   court.ID,
			Date:      model.DateOf(futureDate),
			StartTime: booking.MustClock("10:00"),
			EndTime:   booking.MustClock("11:00"),
		}
	}
	if err := env.db.Create(row()).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := env.db.Create(row()).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("second insert: got %v, want ErrDuplicatedKey", err)
	}
}

func TestBookCourt_TouchingIntervalsCoexist(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 40)
	ctx := context.Background()

	if _, err := env.scheduling.BookCourt(ctx, playerIdentity(), court.ID, futureDate,
		booking.MustClock("10:00"), booking.MustClock("11:00")); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := env.scheduling.BookCourt(ctx, playerIdentity(), court.ID, futureDate,
		booking.MustClock("11:00"), booking.MustClock("12:00")); err != nil {
		t.Errorf("back-to-back booking rejected: %v", err)
	}
}

func TestBookCourt_Rejections(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 40)
	ctx := context.Background()
	ident := playerIdentity()

	_, err := env.scheduling.BookCourt(ctx, ident, court.ID, futureDate,
		booking.MustClock("05:00"), booking.MustClock("07:00"))
	if booking.KindOf(err) != booking.KindOutsideBusinessHours {
		t.Errorf("early booking: got %v, want outside_business_hours", err)
	}

	past := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = env.scheduling.BookCourt(ctx, ident, court.ID, past,
		booking.MustClock("10:00"), booking.MustClock("11:00"))
	if booking.KindOf(err) != booking.KindPastDate {
		t.Errorf("past booking: got %v, want past_date", err)
	}

	_, err = env.scheduling.BookCourt(ctx, ident, uuid.New(), futureDate,
		booking.MustClock("10:00"), booking.MustClock("11:00"))
	if booking.KindOf(err) != booking.KindNotFound {
		t.Errorf("unknown court: got %v, want not_found", err)
	}

	closed := seedCourt(t, env.db, 40)
	if err := env.db.Model(closed).Update("available", false).Error; err != nil {
		t.Fatalf("close court: %v", err)
	}
	_, err = env.scheduling.BookCourt(ctx, ident, closed.ID, futureDate,
		booking.MustClock("10:00"), booking.MustClock("11:00"))
	if booking.KindOf(err) != booking.KindUnavailable {
		t.Errorf("closed court: got %v, want unavailable", err)
	}
}

func TestUpdateCourt_ExcludesOwnRowAndRecomputesPrice(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 40)
	ctx := context.Background()
	ident := playerIdentity()

	first, err := env.scheduling.BookCourt(ctx, ident, court.ID, futureDate,
		booking.MustClock("10:00"), booking.MustClock("11:00"))
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// Shifting inside its own window must not conflict with itself.
	updated, err := env.scheduling.UpdateCourt(ctx, ident, first.Reservation.ID, futureDate,
		booking.MustClock("10:30"), booking.MustClock("12:30"))
	if err != nil {
		t.Fatalf("UpdateCourt: %v", err)
	}
	if want := decimal.NewFromInt(80); !updated.Price.Equal(want) {
		t.Errorf("updated price = %s, want %s", updated.Price, want)
	}

	// But it still collides with other reservations.
	if _, err := env.scheduling.BookCourt(ctx, playerIdentity(), court.ID, futureDate,
		booking.MustClock("13:00"), booking.MustClock("14:00")); err != nil {
		t.Fatalf("second booking: %v", err)
	}
	_, err = env.scheduling.UpdateCourt(ctx, ident, first.Reservation.ID, futureDate,
		booking.MustClock("13:30"), booking.MustClock("14:30"))
	if booking.KindOf(err) != booking.KindConflict {
		t.Errorf("move onto another booking: got %v, want conflict", err)
	}
}

func TestCancelCourt_Ownership(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 40)
	ctx := context.Background()
	owner := playerIdentity()

	resa, err := env.scheduling.BookCourt(ctx, owner, court.ID, futureDate,
		booking.MustClock("10:00"), booking.MustClock("11:00"))
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	err = env.scheduling.CancelCourt(ctx, playerIdentity(), resa.Reservation.ID)
	if booking.KindOf(err) != booking.KindPermissionDenied {
		t.Errorf("stranger cancel: got %v, want permission_denied", err)
	}

	// Admin may cancel anyone's reservation.
	if err := env.scheduling.CancelCourt(ctx, adminIdentity(), resa.Reservation.ID); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}

	var count int64
	env.db.Model(&model.CourtReservation{}).Count(&count)
	if count != 0 {
		t.Errorf("reservation rows = %d after cancel, want 0", count)
	}
}

func TestListUserReservations_MergedAndSplit(t *testing.T) {
	env := newTestEnv(t)
	court := seedCourt(t, env.db, 40)
	coach := seedCoach(t, env.db, 50)
	ctx := context.Background()
	ident := playerIdentity()

	if _, err := env.scheduling.BookCourt(ctx, ident, court.ID, futureDate,
		booking.MustClock("10:00"), booking.MustClock("11:00")); err != nil {
		t.Fatalf("book court: %v", err)
	}
	if _, err := env.scheduling.BookCoachDirect(ctx, ident, coach.ID, futureDate,
		booking.MustClock("14:00"), booking.MustClock("15:00")); err != nil {
		t.Fatalf("book coach: %v", err)
	}

	// Seed one past row directly; the service refuses past dates.
	past := model.DateOf(time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC))
	uid := ident.UserID
	if err := env.db.Create(&model.CourtReservation{
		UserID:    &uid,
		CourtID:   court.ID,
		Date:      past,
		StartTime: booking.MustClock("09:00"),
		EndTime:   booking.MustClock("10:00"),
	}).Error; err != nil {
		t.Fatalf("seed past reservation: %v", err)
	}

	overview, err := env.scheduling.ListUserReservations(ctx, ident)
	if err != nil {
		t.Fatalf("ListUserReservations: %v", err)
	}
	if len(overview.Upcoming) != 2 {
		t.Errorf("upcoming = %d, want 2", len(overview.Upcoming))
	}
	if len(overview.Past) != 1 {
		t.Errorf("past = %d, want 1", len(overview.Past))
	}

	if _, err := env.scheduling.ListUserReservations(ctx, booking.Identity{}); booking.KindOf(err) != booking.KindValidation {
		t.Errorf("anonymous list: got %v, want validation error", err)
	}
}
