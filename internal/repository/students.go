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

// MongoStudentStore implements StudentStore on the "students" collection.
type MongoStudentStore struct {
	coll *mongo.Collection
}

func NewMongoStudentStore(db *mongo.Database) *MongoStudentStore {
	return &MongoStudentStore{coll: db.Collection("students")}
}

func (s *MongoStudentStore) Create(ctx context.Context, student *models.Student) error {
	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now
	res, err := s.coll.InsertOne(ctx, student)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		student.ID = oid
	}
	return nil
}

func (s *MongoStudentStore) FindByID(ctx context.Context, id string) (*models.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStudentStore) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoStudentStore) FindByFederatedID(ctx context.Context, federatedID string) (*models.Student, error) {
	return s.findOne(ctx, bson.M{"federated_id": federatedID})
}

func (s *MongoStudentStore) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now()
	return s.updateByID(ctx, id, bson.M{"$set": bson.M{"last_login": now, "updated_at": now}})
}

func (s *MongoStudentStore) SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error {
	return s.updateByID(ctx, id, bson.M{"$set": bson.M{
		"verification_code":   code,
		"verification_expire": expires,
		"updated_at":          time.Now(),
	}})
}

// ConsumeVerificationCode flips the student to verified and clears the code
// in one conditional update, so a code can only ever be redeemed once even
// under concurrent requests.
func (s *MongoStudentStore) ConsumeVerificationCode(ctx context.Context, code string, now time.Time) (*models.Student, error) {
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

func (s *MongoStudentStore) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	return s.updateByID(ctx, id, bson.M{"$set": bson.M{
		"reset_token":  token,
		"reset_expire": expires,
		"updated_at":   time.Now(),
	}})
}

// ConsumeResetToken swaps in the new password hash and clears the token pair
// atomically.
func (s *MongoStudentStore) ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (*models.Student, error) {
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

func (s *MongoStudentStore) LinkFederatedID(ctx context.Context, id, federatedID, provider string) error {
	return s.updateByID(ctx, id, bson.M{"$set": bson.M{
		"federated_id":  federatedID,
		"auth_provider": provider,
		"updated_at":    time.Now(),
	}})
}

func (s *MongoStudentStore) findOne(ctx context.Context, filter bson.M) (*models.Student, error) {
	var student models.Student
	if err := s.coll.FindOne(ctx, filter).Decode(&student); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (s *MongoStudentStore) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Student, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var student models.Student
	if err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&student); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (s *MongoStudentStore) updateByID(ctx context.Context, id string, update bson.M) error {
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
