package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/money"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration-style tests: run only when TEST_DATABASE_URL is set and the
// migrations have been applied.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, repo *UserRepository) *domain.UserAccount {
	t.Helper()
	username := fmt.Sprintf("it_%d", time.Now().UnixNano())
	u, err := repo.Create(context.Background(), username, username+"@test.local", []byte("x"))
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestMutateRestrictionRoundTrip(t *testing.T) {
	pool := testPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	u := createTestUser(t, repo)

	_, err := repo.Mutate(ctx, u.ID, func(acc *domain.UserAccount) error {
		acc.MilestoneAmount = money.MustParse("-15.00")
		acc.Restriction = &domain.Restriction{
			AdsLimit:   5,
			Deposit:    money.MustParse("20.00"),
			Commission: money.MustParse("10.00"),
		}
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MilestoneAmount.String() != "-15.00" {
		t.Fatalf("milestone_amount = %s; want -15.00", got.MilestoneAmount)
	}
	if got.Restriction == nil || got.Restriction.AdsLimit != 5 || got.Restriction.Deposit.String() != "20.00" {
		t.Fatalf("restriction round trip: %+v", got.Restriction)
	}

	// clearing writes all four columns back to NULL
	if _, err := repo.Mutate(ctx, u.ID, func(acc *domain.UserAccount) error {
		acc.Restriction = nil
		return nil
	}); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = repo.GetByID(ctx, u.ID)
	if got.Restriction != nil {
		t.Fatalf("restriction still present: %+v", got.Restriction)
	}
}

func TestMutateSerializesConcurrentWriters(t *testing.T) {
	pool := testPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	u := createTestUser(t, repo)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Mutate(ctx, u.ID, func(acc *domain.UserAccount) error {
				acc.TotalAdsCompleted++
				acc.MilestoneAmount = acc.MilestoneAmount.Add(money.MustParse("2.50"))
				return nil
			})
			if err != nil {
				t.Errorf("mutate: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TotalAdsCompleted != writers {
		t.Fatalf("total_ads_completed = %d; want %d (lost update)", got.TotalAdsCompleted, writers)
	}
	if want := money.MustParse("2.50").MulInt(writers); !got.MilestoneAmount.Equal(want) {
		t.Fatalf("milestone_amount = %s; want %s", got.MilestoneAmount, want)
	}
}
