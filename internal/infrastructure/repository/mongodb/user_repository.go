package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/lllypuk/userhub/internal/domain/errs"
	"github.com/lllypuk/userhub/internal/domain/objectid"
	userdomain "github.com/lllypuk/userhub/internal/domain/user"
)

// MongoUserRepository implements userapp.Repository (application layer interface)
type MongoUserRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// UserRepoOption configures MongoUserRepository.
type UserRepoOption func(*MongoUserRepository)

// WithUserRepoLogger sets the logger for user repository.
func WithUserRepoLogger(logger *slog.Logger) UserRepoOption {
	return func(r *MongoUserRepository) {
		r.logger = logger
	}
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(collection *mongo.Collection, opts ...UserRepoOption) *MongoUserRepository {
	r := &MongoUserRepository{
		collection: collection,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// FindByUsername finds a user by username
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*userdomain.User, error) {
	if username == "" {
		return nil, errs.ErrInvalidInput
	}

	return r.findOne(ctx, bson.M{"username": username}, slog.String("username", username))
}

// FindByID finds a user by hex ID
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*userdomain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	return r.findOne(ctx, bson.M{"_id": oid}, slog.String("user_id", id))
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, attr slog.Attr) (*userdomain.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			logError(ctx, r.logger, "failed to find user", err, attr)
		}
		return nil, HandleMongoError(err, "users")
	}

	return r.documentToUser(&doc)
}

// Insert persists a new user. A duplicate username comes back from the
// unique index as errs.ErrAlreadyExists.
func (r *MongoUserRepository) Insert(ctx context.Context, user *userdomain.User) error {
	if user == nil || user.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	doc, err := r.userToDocument(user)
	if err != nil {
		return err
	}

	_, err = r.collection.InsertOne(ctx, doc)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		logError(ctx, r.logger, "failed to insert user", err,
			slog.String("user_id", user.ID().String()),
			slog.String("username", user.Username()),
		)
	}
	return HandleMongoError(err, "users")
}

// UpdatePartial sets name, surname and updated_at on the user with the given ID.
// Username is never written.
func (r *MongoUserRepository) UpdatePartial(
	ctx context.Context,
	id string,
	name, surname string,
	updatedAt time.Time,
) (userdomain.UpdateResult, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return userdomain.UpdateResult{}, errs.ErrInvalidInput
	}

	update := bson.M{"$set": bson.M{
		"name":       name,
		"surname":    surname,
		"updated_at": updatedAt,
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		logError(ctx, r.logger, "failed to update user", err, slog.String("user_id", id))
		return userdomain.UpdateResult{}, HandleMongoError(err, "users")
	}

	return userdomain.UpdateResult{
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
	}, nil
}

// List returns every user in natural order
func (r *MongoUserRepository) List(ctx context.Context) ([]*userdomain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		logError(ctx, r.logger, "failed to list users", err)
		return nil, HandleMongoError(err, "users")
	}

	users, err := decodeAll(ctx, cursor, r.documentToUser, "users")
	if err != nil {
		logError(ctx, r.logger, "failed to read users", err)
		return nil, err
	}
	return users, nil
}

// userDocument represents the document stored in MongoDB
type userDocument struct {
	ID       bson.ObjectID `bson:"_id"`
	Username string        `bson:"username"`
	Name     string        `bson:"name"`
	Surname  string        `bson:"surname"`

	BaseDocument `bson:",inline"`
}

func (r *MongoUserRepository) userToDocument(user *userdomain.User) (userDocument, error) {
	oid, err := user.ID().ObjectID()
	if err != nil {
		return userDocument{}, errs.ErrInvalidInput
	}

	return userDocument{
		ID:       oid,
		Username: user.Username(),
		Name:     user.Name(),
		Surname:  user.Surname(),
		BaseDocument: BaseDocument{
			CreatedAt: user.CreatedAt(),
			UpdatedAt: user.UpdatedAt(),
		},
	}, nil
}

func (r *MongoUserRepository) documentToUser(doc *userDocument) (*userdomain.User, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	return userdomain.Reconstruct(
		objectid.FromObjectID(doc.ID),
		doc.Username,
		doc.Name,
		doc.Surname,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
