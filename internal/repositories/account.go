package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AccountRepository manages database accounts defined on one database.
type AccountRepository struct {
	db *mongo.Database
}

// NewAccountRepository creates a new [AccountRepository] for accounts defined on db.
func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create runs createUser. The store rejects an existing username with [shared.ErrAlreadyExists].
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	roles := bson.A{}
	for _, rb := range account.Roles {
		roles = append(roles, bson.D{{Key: "role", Value: rb.Role}, {Key: "db", Value: rb.DB}})
	}

	cmd := bson.D{
		{Key: "createUser", Value: account.Username},
		{Key: "pwd", Value: account.Password},
		{Key: "roles", Value: roles},
	}

	if err := r.db.RunCommand(ctx, cmd).Err(); err != nil {
		return Classify(fmt.Sprintf("create account %q", account.Username), err)
	}
	return nil
}

// Get looks up an account with usersInfo. The password is never returned.
func (r *AccountRepository) Get(ctx context.Context, username string) (*models.Account, error) {
	users, err := r.usersInfo(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("get account %q: %w", username, shared.ErrNotFound)
	}
	return &users[0], nil
}

// Count returns how many accounts named username exist on the database.
func (r *AccountRepository) Count(ctx context.Context, username string) (int, error) {
	users, err := r.usersInfo(ctx, username)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (r *AccountRepository) usersInfo(ctx context.Context, username string) ([]models.Account, error) {
	var res struct {
		Users []models.Account `bson:"users"`
	}

	cmd := bson.D{{Key: "usersInfo", Value: username}}
	if err := r.db.RunCommand(ctx, cmd).Decode(&res); err != nil {
		return nil, Classify(fmt.Sprintf("get account %q", username), err)
	}
	return res.Users, nil
}
