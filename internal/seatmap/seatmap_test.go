package seatmap

import "testing"

func TestForLayoutSizes(t *testing.T) {
	cases := []struct {
		busType BusType
		class   Class
		want    int
	}{
		{BusTypeNoneAC, ClassEconomy, 60},
		{BusTypeNoneAC, ClassBusiness, 40},
		{BusTypeAC, ClassBusiness, 40},
		{BusTypeAC, ClassFirstClass, 30},
		{BusTypeSleeper, ClassFirstClass, 20},
	}

	for _, tc := range cases {
		layout, err := For(tc.busType, tc.class)
		if err != nil {
			t.Fatalf("For(%s, %s): %v", tc.busType, tc.class, err)
		}
		if len(layout) != tc.want {
			t.Errorf("For(%s, %s): got %d seats, want %d", tc.busType, tc.class, len(layout), tc.want)
		}
		if layout.MaxSeat() != tc.want {
			t.Errorf("For(%s, %s): MaxSeat = %d, want %d", tc.busType, tc.class, layout.MaxSeat(), tc.want)
		}
		for i, seat := range layout {
			if seat.Number != i+1 {
				t.Fatalf("For(%s, %s): seat at index %d has number %d", tc.busType, tc.class, i, seat.Number)
			}
		}
	}
}

func TestForUnsupportedCombination(t *testing.T) {
	if _, err := For(BusTypeSleeper, ClassEconomy); err == nil {
		t.Fatal("expected error for SLEEPER_BUS/ECONOMY")
	}
	if _, err := For(BusTypeAC, ClassEconomy); err == nil {
		t.Fatal("expected error for AC_BUS/ECONOMY")
	}
}

func TestLayoutLabels(t *testing.T) {
	economy, err := For(BusTypeNoneAC, ClassEconomy)
	if err != nil {
		t.Fatal(err)
	}

	labelChecks := map[int]string{1: "1A", 4: "1D", 5: "2A", 60: "15D"}
	for number, want := range labelChecks {
		got, ok := economy.Label(number)
		if !ok || got != want {
			t.Errorf("economy seat %d: got %q (ok=%v), want %q", number, got, ok, want)
		}
	}

	if _, ok := economy.Label(61); ok {
		t.Error("seat 61 should not exist on a 60-seat economy bus")
	}
	if _, ok := economy.Label(0); ok {
		t.Error("seat 0 should never exist")
	}

	business, err := For(BusTypeAC, ClassBusiness)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := business.Label(40); got != "14A" {
		t.Errorf("business seat 40: got %q, want 14A", got)
	}
	if got, _ := business.Label(39); got != "13C" {
		t.Errorf("business seat 39: got %q, want 13C", got)
	}
}

func TestForReturnsCopy(t *testing.T) {
	first, err := For(BusTypeSleeper, ClassFirstClass)
	if err != nil {
		t.Fatal(err)
	}
	first[0].Label = "corrupted"

	second, err := For(BusTypeSleeper, ClassFirstClass)
	if err != nil {
		t.Fatal(err)
	}
	if second[0].Label != "1A" {
		t.Fatalf("canonical layout mutated: seat 1 label is %q", second[0].Label)
	}
}
