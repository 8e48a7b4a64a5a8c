package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tennispark/booking-platform/internal/booking"
	"github.com/tennispark/booking-platform/internal/model"
)

func weekdayRule(day time.Weekday, start, end string) TemplateRule {
	return TemplateRule{
		Weekday:   day,
		StartTime: booking.MustClock(start),
		EndTime:   booking.MustClock(end),
	}
}

func TestSetWeeklyTemplate_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	coach := seedCoach(t, env.db, 50)
	rules := []TemplateRule{weekdayRule(time.Monday, "09:00", "12:00")}

	err := env.availability.SetWeeklyTemplate(context.Background(), playerIdentity(), coach.ID, rules)
	if booking.KindOf(err) != booking.KindPermissionDenied {
		t.Errorf("player set template: got %v, want permission_denied", err)
	}
}

func TestSetWeeklyTemplate_Validation(t *testing.T) {
	env := newTestEnv(t)
	coach := seedCoach(t, env.db, 50)
	ctx := context.Background()
	admin := adminIdentity()

	err := env.availability.SetWeeklyTemplate(ctx, admin, coach.ID, nil)
	if booking.KindOf(err) != booking.KindValidation {
		t.Errorf("empty rules: got %v, want validation error", err)
	}

	err = env.availability.SetWeeklyTemplate(ctx, admin, coach.ID,
		[]TemplateRule{weekdayRule(time.Monday, "12:00", "09:00")})
	if booking.KindOf(err) != booking.KindValidation {
		t.Errorf("inverted rule: got %v, want validation error", err)
	}

	// Templates outside business hours would materialize unbookable-by
	// -rule slots that the slot path would still accept; rejected here.
	err = env.availability.SetWeeklyTemplate(ctx, admin, coach.ID,
		[]TemplateRule{weekdayRule(time.Monday, "05:00", "09:00")})
	if booking.KindOf(err) != booking.KindOutsideBusinessHours {
		t.Errorf("out-of-hours rule: got %v, want outside_business_hours", err)
	}

	err = env.availability.SetWeeklyTemplate(ctx, admin, uuid.New(),
		[]TemplateRule{weekdayRule(time.Monday, "09:00", "12:00")})
	if booking.KindOf(err) != booking.KindNotFound {
		t.Errorf("unknown coach: got %v, want not_found", err)
	}
}

func TestSetWeeklyTemplate_ReplacesRuleSet(t *testing.T) {
	env := newTestEnv(t)
	coach := seedCoach(t, env.db, 50)
	ctx := context.Background()
	admin := adminIdentity()

	if err := env.availability.SetWeeklyTemplate(ctx, admin, coach.ID,
		[]TemplateRule{weekdayRule(time.Monday, "09:00", "12:00")}); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := env.availability.SetWeeklyTemplate(ctx, admin, coach.ID,
		[]TemplateRule{weekdayRule(time.Tuesday, "14:00", "16:00")}); err != nil {
		t.Fatalf("second set: %v", err)
	}

	active, err := env.availability.ListActiveTemplates(ctx, coach.ID)
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	if len(active) != 1 || active[0].Weekday != time.Tuesday {
		t.Fatalf("active templates = %+v, want a single Tuesday rule", active)
	}

	// The old rule survives deactivated, not deleted.
	var total int64
	env.db.Model(&model.AvailabilityTemplate{}).Where("coach_id = ?", coach.ID).Count(&total)
	if total != 2 {
		t.Errorf("template rows = %d, want 2", total)
	}

	// All remaining free slots belong to the new rule set.
	now := time.Now()
	slots, err := env.availability.AvailableSlots(ctx, coach.ID, now, now.AddDate(0, 0, DefaultHorizonDays))
	if err != nil {
		t.Fatalf("available slots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("no slots for the replacement rule")
	}
	for _, s := range slots {
		if time.Time(s.Date).Weekday() != time.Tuesday {
			t.Errorf("slot on %v survived the replacement", time.Time(s.Date).Weekday())
		}
	}
}

func TestSetWeeklyTemplate_KeepsBookedSlotsOfOldRules(t *testing.T) {
	env := newTestEnv(t)
	coach := seedCoach(t, env.db, 50)
	ctx := context.Background()
	admin := adminIdentity()

	if err := env.availability.SetWeeklyTemplate(ctx, admin, coach.ID,
		[]TemplateRule{weekdayRule(time.Monday, "09:00", "12:00")}); err != nil {
		t.Fatalf("set: %v", err)
	}

	now := time.Now()
	slots, err := env.availability.AvailableSlots(ctx, coach.ID, now, now.AddDate(0, 0, DefaultHorizonDays))
	if err != nil || len(slots) == 0 {
		t.Fatalf("available slots: %v (%d)", err, len(slots))
	}
	booked := slots[0]
	if _, err := env.scheduling.BookCoachSlot(ctx, playerIdentity(), booked.ID); err != nil {
		t.Fatalf("book slot: %v", err)
	}

	if err := env.availability.SetWeeklyTemplate(ctx, admin, coach.ID,
		[]TemplateRule{weekdayRule(time.Friday, "09:00", "10:00")}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// Unbooked Monday slots are pruned; the booked one is not.
	var survivors []model.Slot
	if err := env.db.Where("template_id = ?", booked.TemplateID).Find(&survivors).Error; err != nil {
		t.Fatalf("load old-rule slots: %v", err)
	}
	if len(survivors) != 1 || survivors[0].ID != booked.ID {
		t.Errorf("old-rule slots = %d, want only the booked one", len(survivors))
	}
}

func TestMaterialize_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	coach := seedCoach(t, env.db, 50)
	ctx := context.Background()

	if err := env.availability.SetWeeklyTemplate(ctx, adminIdentity(), coach.ID,
		[]TemplateRule{weekdayRule(time.Wednesday, "10:00", "11:00")}); err != nil {
		t.Fatalf("set: %v", err)
	}

	var before int64
	env.db.Model(&model.Slot{}).Count(&before)
	if before == 0 {
		t.Fatal("no slots materialized")
	}

	if err := env.availability.Materialize(ctx, coach.ID, time.Now(), DefaultHorizonDays); err != nil {
		t.Fatalf("re-materialize: %v", err)
	}
	if err := env.availability.MaterializeAll(ctx); err != nil {
		t.Fatalf("materialize all: %v", err)
	}

	var after int64
	env.db.Model(&model.Slot{}).Count(&after)
	if after != before {
		t.Errorf("slot count %d -> %d after re-run, want unchanged", before, after)
	}
}

func TestAvailableSlots_OrderedAndFiltered(t *testing.T) {
	env := newTestEnv(t)
	coach := seedCoach(t, env.db, 50)
	ctx := context.Background()

	seedSlot(t, env, coach.ID, futureDate.AddDate(0, 0, 1), "09:00", "10:00")
	seedSlot(t, env, coach.ID, futureDate, "11:00", "12:00")
	early := seedSlot(t, env, coach.ID, futureDate, "09:00", "10:00")
	taken := seedSlot(t, env, coach.ID, futureDate, "14:00", "15:00")
	if _, err := env.scheduling.BookCoachSlot(ctx, playerIdentity(), taken.ID); err != nil {
		t.Fatalf("book: %v", err)
	}

	slots, err := env.availability.AvailableSlots(ctx, coach.ID, futureDate, futureDate.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("free slots = %d, want 3", len(slots))
	}
	if slots[0].ID != early.ID {
		t.Errorf("first slot = %s, want the earliest on the first date", slots[0].StartTime)
	}
	for _, s := range slots {
		if s.IsBooked {
			t.Error("booked slot leaked into available listing")
		}
	}
}
