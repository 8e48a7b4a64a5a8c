package booking

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseClock_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want ClockTime
	}{
		{"00:00", 0},
		{"06:00", 6 * 60},
		{"09:30", 9*60 + 30},
		{"18:00", 18 * 60},
		{"23:59", 23*60 + 59},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
		if got.String() != tc.in {
			t.Errorf("ParseClock(%q).String() = %q, want round trip", tc.in, got.String())
		}
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, in := range []string{"", "9:00", "24:00", "12:60", "12-30", "ab:cd", "12:30:00"} {
		if _, err := ParseClock(in); err == nil {
			t.Errorf("ParseClock(%q): expected error", in)
		}
	}
}

func TestParseClock_RejectsNonDigitVariants(t *testing.T) {
	// Sign and space variants must not be silently normalized.
	for _, in := range []string{" 1:30", "+1:30", "-1:30", "1 :30", "01: 5", "0x:30"} {
		if _, err := ParseClock(in); err == nil {
			t.Errorf("ParseClock(%q): expected error", in)
		}
	}
}

func TestClockTime_JSONRoundTrip(t *testing.T) {
	ct := MustClock("07:45")

	data, err := json.Marshal(ct)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"07:45"` {
		t.Fatalf("marshal = %s, want \"07:45\"", data)
	}

	var back ClockTime
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != ct {
		t.Errorf("round trip = %v, want %v", back, ct)
	}
}

func TestClockTime_UnmarshalJSONRequiresQuotedString(t *testing.T) {
	var ct ClockTime
	if err := json.Unmarshal([]byte(`"07:45"`), &ct); err != nil {
		t.Fatalf("quoted value: %v", err)
	}
	for _, in := range []string{`07:45`, `745`, `null`, `" 1:30"`} {
		if err := ct.UnmarshalJSON([]byte(in)); err == nil {
			t.Errorf("UnmarshalJSON(%s): expected error", in)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	wd, err := ParseWeekday("monday")
	if err != nil {
		t.Fatalf("ParseWeekday: %v", err)
	}
	if wd != time.Monday {
		t.Errorf("ParseWeekday(monday) = %v", wd)
	}

	if _, err := ParseWeekday("lundi"); err == nil {
		t.Error("ParseWeekday(lundi): expected error")
	}
}
