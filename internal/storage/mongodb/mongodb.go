package mongodb

import (
	"bookstore/internal/domain/models"
	"bookstore/internal/storage"
	"context"
	"errors"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Storage struct {
	client   *mongo.Client
	database string
}

// New creates a new instance of the MongoDB storage.
func New(uri string, database string) (*Storage, error) {
	const op = "storage.mongodb.New"

	clientOptions := options.Client().ApplyURI(uri)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		client:   client,
		database: database,
	}, nil
}

// Close closes instated mongodb connection.
func (s *Storage) Close(ctx context.Context) error {
	if s.client != nil {
		return s.client.Disconnect(ctx)
	}
	return nil
}

// EnsureIndexes creates the unique email index the signup flow relies on.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	const op = "storage.mongodb.EnsureIndexes"

	collection := s.client.Database(s.database).Collection("users")

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetBook(ctx context.Context, id string) (models.Book, error) {
	const op = "storage.mongodb.GetBook"

	collection := s.client.Database(s.database).Collection("books")

	bookId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	var book models.Book

	err = collection.FindOne(ctx, bson.M{"_id": bookId}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Book{}, fmt.Errorf("%s: %w", op, storage.ErrorBookNotFound)
		}
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return book, nil
}

func (s *Storage) ListBooks(
	ctx context.Context,
	keyword string,
	limit int64,
	skip int64,
) ([]models.Book, error) {
	const op = "storage.mongodb.ListBooks"

	collection := s.client.Database(s.database).Collection("books")

	opts := options.Find().SetLimit(limit).SetSkip(skip)

	cursor, err := collection.Find(ctx, bookListFilter(keyword), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	books := make([]models.Book, 0)
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return books, nil
}

func (s *Storage) SaveBook(ctx context.Context, book models.Book) (models.Book, error) {
	const op = "storage.mongodb.SaveBook"

	collection := s.client.Database(s.database).Collection("books")

	result, err := collection.InsertOne(ctx, book)
	if err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return models.Book{}, fmt.Errorf("%s: failed to get inserted book ID", op)
	}

	book.ID = id
	return book, nil
}

func (s *Storage) UpdateBook(
	ctx context.Context,
	id string,
	update models.BookUpdate,
) (models.Book, error) {
	const op = "storage.mongodb.UpdateBook"

	bookId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	fields := bookUpdateFields(update)
	if len(fields) == 0 {
		return s.GetBook(ctx, id)
	}

	collection := s.client.Database(s.database).Collection("books")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var book models.Book

	err = collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": bookId},
		bson.M{"$set": fields},
		opts,
	).Decode(&book)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Book{}, fmt.Errorf("%s: %w", op, storage.ErrorBookNotFound)
		}
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return book, nil
}

func (s *Storage) RemoveBook(ctx context.Context, id string) (models.Book, error) {
	const op = "storage.mongodb.RemoveBook"

	bookId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	collection := s.client.Database(s.database).Collection("books")

	var book models.Book

	err = collection.FindOneAndDelete(ctx, bson.M{"_id": bookId}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Book{}, fmt.Errorf("%s: %w", op, storage.ErrorBookNotFound)
		}
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}

	return book, nil
}

func (s *Storage) SaveUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "storage.mongodb.SaveUser"

	collection := s.client.Database(s.database).Collection("users")

	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrorUserExists)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return models.User{}, fmt.Errorf("%s: failed to get inserted user ID", op)
	}

	user.ID = id
	return user, nil
}

func (s *Storage) GetUser(ctx context.Context, id string) (models.User, error) {
	const op = "storage.mongodb.GetUser"

	collection := s.client.Database(s.database).Collection("users")

	userId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	var user models.User

	err = collection.FindOne(ctx, bson.M{"_id": userId}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrorUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "storage.mongodb.GetUserByEmail"

	collection := s.client.Database(s.database).Collection("users")

	var user models.User

	err := collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrorUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// bookListFilter builds the list filter: empty when no keyword, otherwise a
// case-insensitive substring match on title.
func bookListFilter(keyword string) bson.M {
	if keyword == "" {
		return bson.M{}
	}
	return bson.M{
		"title": primitive.Regex{Pattern: keyword, Options: "i"},
	}
}

func bookUpdateFields(update models.BookUpdate) bson.M {
	fields := bson.M{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Author != nil {
		fields["author"] = *update.Author
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.Category != nil {
		fields["category"] = *update.Category
	}
	return fields
}
