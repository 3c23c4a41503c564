package domain

import (
	"testing"

	"adclick_webapp/internal/money"
)

func TestDepositBlocked(t *testing.T) {
	active := &Restriction{AdsLimit: 5, AdsCompleted: 2}
	spent := &Restriction{AdsLimit: 5, AdsCompleted: 5}

	cases := []struct {
		name        string
		amount      string
		restriction *Restriction
		want        bool
	}{
		{"positive balance, no restriction", "10.00", nil, false},
		{"zero balance, no restriction", "0.00", nil, false},
		{"negative balance, no restriction", "-5.00", nil, true},
		{"negative balance, deposit on file", "-5.00", active, false},
		{"negative balance, quota complete", "-5.00", spent, true},
		{"positive balance, quota complete", "5.00", spent, false},
	}

	for _, tc := range cases {
		u := &UserAccount{
			MilestoneAmount: money.MustParse(tc.amount),
			Restriction:     tc.restriction,
		}
		if got := u.DepositBlocked(); got != tc.want {
			t.Fatalf("%s: DepositBlocked() = %v; want %v", tc.name, got, tc.want)
		}
	}
}

func TestRestrictionComplete(t *testing.T) {
	r := &Restriction{AdsLimit: 3}
	if r.Complete() {
		t.Fatal("fresh restriction should not be complete")
	}
	r.AdsCompleted = 3
	if !r.Complete() {
		t.Fatal("restriction at limit should be complete")
	}
	if r.DepositOnFile() {
		t.Fatal("completed restriction must not count as a deposit")
	}
}

func TestClampPoints(t *testing.T) {
	u := &UserAccount{Points: 50}
	u.Points += 1000
	u.ClampPoints()
	if u.Points != MaxPoints {
		t.Fatalf("points = %d; want %d", u.Points, MaxPoints)
	}

	u.Points = -7
	u.ClampPoints()
	if u.Points != 0 {
		t.Fatalf("points = %d; want 0", u.Points)
	}
}
