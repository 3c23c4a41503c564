package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"adclick_webapp/internal/money"
)

func TestSetRestrictionDeductsDeposit(t *testing.T) {
	cases := []struct {
		name    string
		balance string
		deposit string
		want    string
	}{
		{"positive remainder", "50.00", "20.00", "30.00"},
		{"to zero", "20.00", "20.00", "0.00"},
		{"goes negative", "5.00", "20.00", "-15.00"},
		{"already negative", "-1.00", "20.00", "-21.00"},
	}

	for _, tc := range cases {
		store := newMemStore()
		store.addUser(activeUser(1, tc.balance))
		promo := NewPromotionService(store)

		u, err := promo.SetRestriction(context.Background(), 1, 10, money.MustParse(tc.deposit), money.MustParse("1.00"), nil)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if u.MilestoneAmount.String() != tc.want {
			t.Fatalf("%s: milestoneAmount = %s; want %s", tc.name, u.MilestoneAmount, tc.want)
		}
		if u.OngoingMilestone.String() != tc.deposit {
			t.Fatalf("%s: ongoingMilestone = %s; want deposit %s", tc.name, u.OngoingMilestone, tc.deposit)
		}
	}
}

func TestSetRestrictionPendingAmountOverride(t *testing.T) {
	store := newMemStore()
	store.addUser(activeUser(1, "0.00"))
	promo := NewPromotionService(store)

	pending := money.MustParse("75.00")
	u, err := promo.SetRestriction(context.Background(), 1, 3, money.MustParse("20.00"), money.MustParse("1.00"), &pending)
	if err != nil {
		t.Fatal(err)
	}
	if u.OngoingMilestone.String() != "75.00" {
		t.Fatalf("ongoingMilestone = %s; want 75.00", u.OngoingMilestone)
	}
}

func TestSetRestrictionReplacesNotStacks(t *testing.T) {
	store := newMemStore()
	store.addUser(activeUser(1, "100.00"))
	promo := NewPromotionService(store)
	ledger := NewLedgerService(store)
	store.addAd(adFixture())
	ctx := context.Background()

	if _, err := promo.SetRestriction(ctx, 1, 5, money.MustParse("10.00"), money.MustParse("1.00"), nil); err != nil {
		t.Fatal(err)
	}
	// advance the quota a bit
	for i := 0; i < 3; i++ {
		if _, err := ledger.CreditAdClick(ctx, 1, 1); err != nil {
			t.Fatal(err)
		}
	}

	u, err := promo.SetRestriction(ctx, 1, 8, money.MustParse("15.00"), money.MustParse("2.00"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if u.Restriction.AdsCompleted != 0 {
		t.Fatalf("restrictedAdsCompleted = %d; want reset to 0", u.Restriction.AdsCompleted)
	}
	if u.Restriction.AdsLimit != 8 || u.Restriction.Deposit.String() != "15.00" {
		t.Fatalf("restriction not replaced: %+v", u.Restriction)
	}
	// both deposits were deducted (prior one is not refunded): 100 - 10 + 3 - 15
	if u.MilestoneAmount.String() != "78.00" {
		t.Fatalf("milestoneAmount = %s; want 78.00", u.MilestoneAmount)
	}
}

func TestClearThenSetEqualsSingleSet(t *testing.T) {
	ctx := context.Background()

	// path A: set once
	storeA := newMemStore()
	storeA.addUser(activeUser(1, "40.00"))
	promoA := NewPromotionService(storeA)
	if _, err := promoA.SetRestriction(ctx, 1, 6, money.MustParse("12.00"), money.MustParse("3.00"), nil); err != nil {
		t.Fatal(err)
	}

	// path B: set, clear, set again with the same parameters
	storeB := newMemStore()
	storeB.addUser(activeUser(1, "52.00")) // 40.00 + the extra 12.00 path B loses to the unrefunded first deposit
	promoB := NewPromotionService(storeB)
	if _, err := promoB.SetRestriction(ctx, 1, 6, money.MustParse("12.00"), money.MustParse("3.00"), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := promoB.ClearRestriction(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := promoB.SetRestriction(ctx, 1, 6, money.MustParse("12.00"), money.MustParse("3.00"), nil); err != nil {
		t.Fatal(err)
	}

	a, _ := storeA.GetUser(ctx, 1)
	b, _ := storeB.GetUser(ctx, 1)
	if !reflect.DeepEqual(a.Restriction, b.Restriction) {
		t.Fatalf("restriction state differs: %+v vs %+v", a.Restriction, b.Restriction)
	}
	if a.MilestoneAmount.String() != b.MilestoneAmount.String() {
		t.Fatalf("milestoneAmount differs: %s vs %s", a.MilestoneAmount, b.MilestoneAmount)
	}
	if a.OngoingMilestone.String() != b.OngoingMilestone.String() {
		t.Fatalf("ongoingMilestone differs: %s vs %s", a.OngoingMilestone, b.OngoingMilestone)
	}
}

func TestClearRestrictionDoesNotRefund(t *testing.T) {
	store := newMemStore()
	store.addUser(activeUser(1, "50.00"))
	promo := NewPromotionService(store)
	ctx := context.Background()

	if _, err := promo.SetRestriction(ctx, 1, 5, money.MustParse("20.00"), money.MustParse("1.00"), nil); err != nil {
		t.Fatal(err)
	}
	u, err := promo.ClearRestriction(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if u.Restriction != nil {
		t.Fatalf("restriction still set: %+v", u.Restriction)
	}
	if u.MilestoneAmount.String() != "30.00" {
		t.Fatalf("milestoneAmount = %s; deposit must stay consumed", u.MilestoneAmount)
	}
}

func TestSetRestrictionValidation(t *testing.T) {
	store := newMemStore()
	store.addUser(activeUser(1, "50.00"))
	promo := NewPromotionService(store)
	ctx := context.Background()

	cases := []struct {
		name       string
		limit      int
		deposit    string
		commission string
		want       error
	}{
		{"zero limit", 0, "10.00", "1.00", ErrInvalidAdsLimit},
		{"negative limit", -1, "10.00", "1.00", ErrInvalidAdsLimit},
		{"zero deposit", 5, "0.00", "1.00", ErrInvalidAmount},
		{"negative commission", 5, "10.00", "-1.00", ErrInvalidAmount},
	}

	for _, tc := range cases {
		_, err := promo.SetRestriction(ctx, 1, tc.limit, money.MustParse(tc.deposit), money.MustParse(tc.commission), nil)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v; want %v", tc.name, err, tc.want)
		}
	}

	// no mutation on rejected input
	u, _ := store.GetUser(ctx, 1)
	if u.MilestoneAmount.String() != "50.00" || u.Restriction != nil {
		t.Fatalf("rejected SetRestriction mutated the user: %+v", u)
	}
}

func TestAdjustFieldPointsCap(t *testing.T) {
	store := newMemStore()
	u := activeUser(1, "0.00")
	u.Points = 50
	store.addUser(u)
	promo := NewPromotionService(store)
	ctx := context.Background()

	after, err := promo.AdjustField(ctx, 1, FieldPoints, money.FromInt(1000))
	if err != nil {
		t.Fatal(err)
	}
	if after.Points != 100 {
		t.Fatalf("points = %d; want exactly 100", after.Points)
	}

	after, err = promo.AdjustField(ctx, 1, FieldPoints, money.FromInt(-1000))
	if err != nil {
		t.Fatal(err)
	}
	if after.Points != 0 {
		t.Fatalf("points = %d; want floor 0", after.Points)
	}
}

func TestAdjustFieldAliases(t *testing.T) {
	cases := []struct {
		field string
		read  func(u userSnapshot) string
	}{
		{"bookingValue", func(u userSnapshot) string { return u.milestoneAmount }},
		{"premiumTreasure", func(u userSnapshot) string { return u.milestoneReward }},
		{"normalTreasure", func(u userSnapshot) string { return u.destinationAmount }},
		{FieldMilestoneAmount, func(u userSnapshot) string { return u.milestoneAmount }},
		{FieldOngoingMilestone, func(u userSnapshot) string { return u.ongoingMilestone }},
	}

	for _, tc := range cases {
		store := newMemStore()
		store.addUser(activeUser(1, "0.00"))
		promo := NewPromotionService(store)

		if _, err := promo.AdjustField(context.Background(), 1, tc.field, money.MustParse("7.25")); err != nil {
			t.Fatalf("%s: %v", tc.field, err)
		}

		u, _ := store.GetUser(context.Background(), 1)
		snap := userSnapshot{
			milestoneAmount:   u.MilestoneAmount.String(),
			milestoneReward:   u.MilestoneReward.String(),
			destinationAmount: u.DestinationAmount.String(),
			ongoingMilestone:  u.OngoingMilestone.String(),
		}
		if got := tc.read(snap); got != "7.25" {
			t.Fatalf("%s: target field = %s; want 7.25", tc.field, got)
		}
	}
}

type userSnapshot struct {
	milestoneAmount   string
	milestoneReward   string
	destinationAmount string
	ongoingMilestone  string
}

func TestAdjustFieldUnknownRejected(t *testing.T) {
	store := newMemStore()
	store.addUser(activeUser(1, "10.00"))
	promo := NewPromotionService(store)

	_, err := promo.AdjustField(context.Background(), 1, "totalAdsCompleted", money.FromInt(5))
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("err = %v; want ErrUnknownField", err)
	}

	u, _ := store.GetUser(context.Background(), 1)
	if u.MilestoneAmount.String() != "10.00" {
		t.Fatalf("rejected adjust mutated the user: %s", u.MilestoneAmount)
	}
}
