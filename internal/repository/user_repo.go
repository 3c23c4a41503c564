package repository

import (
	"context"
	"errors"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/money"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, username, email, password_hash, status,
		destination_amount, milestone_amount, milestone_reward, ongoing_milestone,
		total_ads_completed, points,
		restriction_ads_limit, restriction_deposit, restriction_commission, restricted_ads_completed,
		created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a fresh account: status pending, all ledger fields zeroed.
func (r *UserRepository) Create(ctx context.Context, username, email string, passwordHash []byte) (*domain.UserAccount, error) {
	u := &domain.UserAccount{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Status:       domain.StatusPending,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, status,
			destination_amount, milestone_amount, milestone_reward, ongoing_milestone)
		VALUES ($1, $2, $3, $4, '0.00', '0.00', '0.00', '0.00')
		RETURNING id, created_at
	`, username, email, passwordHash, u.Status).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.UserAccount, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.UserAccount, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// SetStatus updates the account status (admin activate/freeze).
func (r *UserRepository) SetStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Mutate runs fn against the user's row under a row lock and persists the
// result in the same transaction. Concurrent mutations of one user serialize
// on the lock, so read-modify-write of the ledger fields is linearizable.
func (r *UserRepository) Mutate(ctx context.Context, id int64, fn func(*domain.UserAccount) error) (*domain.UserAccount, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, err
	}

	if err := fn(u); err != nil {
		return nil, err
	}

	var adsLimit, adsCompleted *int
	var deposit, commission *string
	if rst := u.Restriction; rst != nil {
		adsLimit = &rst.AdsLimit
		adsCompleted = &rst.AdsCompleted
		d, c := rst.Deposit.String(), rst.Commission.String()
		deposit, commission = &d, &c
	}

	_, err = tx.Exec(ctx, `
		UPDATE users SET
			destination_amount = $2, milestone_amount = $3, milestone_reward = $4,
			ongoing_milestone = $5, total_ads_completed = $6, points = $7,
			restriction_ads_limit = $8, restriction_deposit = $9,
			restriction_commission = $10, restricted_ads_completed = $11
		WHERE id = $1
	`, u.ID,
		u.DestinationAmount.String(), u.MilestoneAmount.String(), u.MilestoneReward.String(),
		u.OngoingMilestone.String(), u.TotalAdsCompleted, u.Points,
		adsLimit, deposit, commission, adsCompleted)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.UserAccount, error) {
	var (
		u            domain.UserAccount
		dest         string
		milestone    string
		reward       string
		ongoing      string
		adsLimit     *int
		deposit      *string
		commission   *string
		adsCompleted *int
	)

	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Status,
		&dest, &milestone, &reward, &ongoing,
		&u.TotalAdsCompleted, &u.Points,
		&adsLimit, &deposit, &commission, &adsCompleted,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if u.DestinationAmount, err = money.Parse(dest); err != nil {
		return nil, err
	}
	if u.MilestoneAmount, err = money.Parse(milestone); err != nil {
		return nil, err
	}
	if u.MilestoneReward, err = money.Parse(reward); err != nil {
		return nil, err
	}
	if u.OngoingMilestone, err = money.Parse(ongoing); err != nil {
		return nil, err
	}

	// The four restriction columns are written together, so either all are
	// NULL or none are.
	if adsLimit != nil && deposit != nil && commission != nil && adsCompleted != nil {
		rst := &domain.Restriction{AdsLimit: *adsLimit, AdsCompleted: *adsCompleted}
		if rst.Deposit, err = money.Parse(*deposit); err != nil {
			return nil, err
		}
		if rst.Commission, err = money.Parse(*commission); err != nil {
			return nil, err
		}
		u.Restriction = rst
	}

	return &u, nil
}
