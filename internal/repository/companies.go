package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillsync-hq/skillsync-backend/internal/models"
)

// MongoCompanyStore implements CompanyStore on the "companies" collection.
type MongoCompanyStore struct {
	coll *mongo.Collection
}

func NewMongoCompanyStore(db *mongo.Database) *MongoCompanyStore {
	return &MongoCompanyStore{coll: db.Collection("companies")}
}

func (s *MongoCompanyStore) Create(ctx context.Context, company *models.Company) error {
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now
	res, err := s.coll.InsertOne(ctx, company)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		company.ID = oid
	}
	return nil
}

func (s *MongoCompanyStore) FindByID(ctx context.Context, id string) (*models.Company, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoCompanyStore) FindByEmail(ctx context.Context, email string) (*models.Company, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoCompanyStore) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now()
	return s.updateByID(ctx, id, bson.M{"$set": bson.M{"last_login": now, "updated_at": now}})
}

func (s *MongoCompanyStore) SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error {
	return s.updateByID(ctx, id, bson.M{"$set": bson.M{
		"verification_code":   code,
		"verification_expire": expires,
		"updated_at":          time.Now(),
	}})
}

func (s *MongoCompanyStore) ConsumeVerificationCode(ctx context.Context, code string, now time.Time) (*models.Company, error) {
	filter := bson.M{
		"verification_code":   code,
		"verification_expire": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"is_verified": true, "updated_at": now},
		"$unset": bson.M{"verification_code": "", "verification_expire": ""},
	}
	return s.findOneAndUpdate(ctx, filter, update)
}

func (s *MongoCompanyStore) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	return s.updateByID(ctx, id, bson.M{"$set": bson.M{
		"reset_token":  token,
		"reset_expire": expires,
		"updated_at":   time.Now(),
	}})
}

func (s *MongoCompanyStore) ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (*models.Company, error) {
	filter := bson.M{
		"reset_token":  token,
		"reset_expire": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"password": newPasswordHash, "updated_at": now},
		"$unset": bson.M{"reset_token": "", "reset_expire": ""},
	}
	return s.findOneAndUpdate(ctx, filter, update)
}

func (s *MongoCompanyStore) findOne(ctx context.Context, filter bson.M) (*models.Company, error) {
	var company models.Company
	if err := s.coll.FindOne(ctx, filter).Decode(&company); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (s *MongoCompanyStore) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Company, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var company models.Company
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&company); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (s *MongoCompanyStore) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
