package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/jukeseed/internal/models"
	"github.com/desertthunder/jukeseed/internal/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func fixtureUser() *models.User {
	return &models.User{
		ID:        "baumanto@1",
		Username:  "baumanto",
		Secret:    "secret",
		SessionID: "1",
		IsAdmin:   true,
		Score:     1,
		AuthState: "4321",
	}
}

func TestDocumentRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewUserRepository(mt.DB, "users")
		if err := repo.Insert(ctx, fixtureUser()); err != nil {
			mt.Errorf("Insert() error = %v", err)
		}
		if repo.Collection() != "users" {
			mt.Errorf("expected collection users, got %s", repo.Collection())
		}
	})

	mt.Run("Insert duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users.users index: _id_ dup key: { _id: \"baumanto@1\" }",
		}))

		err := NewUserRepository(mt.DB, "users").Insert(ctx, fixtureUser())
		if !errors.Is(err, shared.ErrAlreadyExists) {
			mt.Errorf("expected ErrAlreadyExists, got %v", err)
		}
	})

	mt.Run("Insert invalid document", func(mt *mtest.T) {
		u := fixtureUser()
		u.ID = "someone@else"

		if err := NewUserRepository(mt.DB, "users").Insert(ctx, u); err == nil {
			t.Error("expected validation error")
		}
	})

	mt.Run("Get", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".sessions"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "1"},
			{Key: "song_list", Value: bson.A{}},
		}))

		s, err := NewSessionRepository(mt.DB, "sessions").Get(ctx, "1")
		if err != nil {
			mt.Fatalf("Get() error = %v", err)
		}
		if s.ID != "1" || s.SongList == nil || len(s.SongList) != 0 {
			mt.Errorf("unexpected session: %#v", s)
		}
	})

	mt.Run("Get missing", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".sessions"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewSessionRepository(mt.DB, "sessions").Get(ctx, "1")
		if !errors.Is(err, shared.ErrNotFound) {
			mt.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("CountByID", func(mt *mtest.T) {
		ns := mt.DB.Name() + ".users"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))

		n, err := NewUserRepository(mt.DB, "users").CountByID(ctx, "baumanto@1")
		if err != nil {
			mt.Fatalf("CountByID() error = %v", err)
		}
		if n != 1 {
			mt.Errorf("expected 1, got %d", n)
		}
	})
}

func TestAccountRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	account := &models.Account{
		Username: "root",
		Password: "root",
		Roles:    []models.RoleBinding{{Role: "readWrite", DB: "users"}},
	}

	mt.Run("Create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		if err := NewAccountRepository(mt.DB).Create(ctx, account); err != nil {
			mt.Errorf("Create() error = %v", err)
		}
	})

	mt.Run("Create existing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    51003,
			Message: `User "root@users" already exists`,
			Name:    "Location51003",
		}))

		err := NewAccountRepository(mt.DB).Create(ctx, account)
		if !errors.Is(err, shared.ErrAlreadyExists) {
			mt.Errorf("expected ErrAlreadyExists, got %v", err)
		}
	})

	mt.Run("Get", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "users", Value: bson.A{
			bson.D{
				{Key: "_id", Value: "users.root"},
				{Key: "user", Value: "root"},
				{Key: "db", Value: "users"},
				{Key: "roles", Value: bson.A{bson.D{{Key: "role", Value: "readWrite"}, {Key: "db", Value: "users"}}}},
			},
		}}))

		got, err := NewAccountRepository(mt.DB).Get(ctx, "root")
		if err != nil {
			mt.Fatalf("Get() error = %v", err)
		}
		if got.Username != "root" || got.Password != "" {
			mt.Errorf("unexpected account: %+v", got)
		}
		if !got.HasRole(models.RoleBinding{Role: "readWrite", DB: "users"}) {
			mt.Errorf("expected readWrite@users, got %v", got.Roles)
		}
	})

	mt.Run("Get missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "users", Value: bson.A{}}))

		_, err := NewAccountRepository(mt.DB).Get(ctx, "root")
		if !errors.Is(err, shared.ErrNotFound) {
			mt.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	mt.Run("Count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "users", Value: bson.A{}}))

		n, err := NewAccountRepository(mt.DB).Count(ctx, "root")
		if err != nil || n != 0 {
			mt.Errorf("Count() = %d, %v, want 0, nil", n, err)
		}
	})
}
