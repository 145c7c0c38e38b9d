package notes

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists notes. Each call is atomic on its own; there is no
// cross-call locking and the last completed write wins.
type Repository interface {
	// Insert assigns the note a fresh ID (and CreatedAt when unset) and stores it.
	Insert(ctx context.Context, n *Note) error
	FindByID(ctx context.Context, id string) (*Note, error)
	// ListByWeek returns the notes of one week in unspecified order.
	ListByWeek(ctx context.Context, weekOffset int) ([]*Note, error)
	Update(ctx context.Context, id string, p Patch) (*Note, error)
	Delete(ctx context.Context, id string) error
}

// MongoRepo stores notes in a MongoDB collection.
type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: db.Collection("notes")}
}

// EnsureIndexes creates the indexes used by week listing
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "week_offset", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "week_offset", Value: 1},
				{Key: "day", Value: 1},
				{Key: "position", Value: 1},
			},
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return storageErr("create indexes", err)
	}
	return nil
}

// Insert creates a new note
func (r *MongoRepo) Insert(ctx context.Context, n *Note) error {
	n.ID = primitive.NewObjectID().Hex()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	_, err := r.coll.InsertOne(ctx, n)
	if err != nil {
		return storageErr("insert note", err)
	}
	return nil
}

// FindByID retrieves a note by its ID
func (r *MongoRepo) FindByID(ctx context.Context, id string) (*Note, error) {
	var note Note
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, storageErr("find note "+id, err)
	}
	return &note, nil
}

// ListByWeek retrieves every note stored for a week offset
func (r *MongoRepo) ListByWeek(ctx context.Context, weekOffset int) ([]*Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"week_offset": weekOffset}, opts)
	if err != nil {
		return nil, storageErr("list notes", err)
	}
	defer cursor.Close(ctx)

	notes := []*Note{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, storageErr("decode notes", err)
	}
	return notes, nil
}

// Update sets the present patch fields and returns the updated document
func (r *MongoRepo) Update(ctx context.Context, id string, p Patch) (*Note, error) {
	if p.Empty() {
		return r.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note Note
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patchDoc(p)}, opts).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, storageErr("update note "+id, err)
	}
	return &note, nil
}

// Delete removes a note by ID
func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storageErr("delete note", err)
	}
	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func patchDoc(p Patch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Day != nil {
		set["day"] = *p.Day
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Color != nil {
		set["color"] = *p.Color
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	if p.WeekOffset != nil {
		set["week_offset"] = *p.WeekOffset
	}
	if p.Repeat != nil {
		set["repeat"] = *p.Repeat
	}
	if p.Position != nil {
		set["position"] = *p.Position
	}
	if p.OwnerRef != nil {
		set["owner_ref"] = *p.OwnerRef
	}
	return set
}
