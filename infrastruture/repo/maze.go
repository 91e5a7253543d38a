package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = 2 * time.Second
	readTimeout  = 2 * time.Second
)

// cellDocument is the BSON form of a single cell.
type cellDocument struct {
	X       int  `bson:"x"`
	Y       int  `bson:"y"`
	Left    bool `bson:"left"`
	Up      bool `bson:"up"`
	Right   bool `bson:"right"`
	Down    bool `bson:"down"`
	Visited bool `bson:"visited"`
}

// mazeDocument is the BSON form of a maze.
type mazeDocument struct {
	ID        uuid.UUID      `bson:"_id"`
	Width     int            `bson:"width"`
	Height    int            `bson:"height"`
	Seed      int64          `bson:"seed"`
	Cells     []cellDocument `bson:"cells,omitempty"`
	CreatedAt time.Time      `bson:"createdAt"`
}

// MongoMazeRepo handles the persistence of mazes in MongoDB.
type MongoMazeRepo struct {
	collection *mongo.Collection
}

// NewMongoMazeRepo creates a new MongoMazeRepo with the given MongoDB client, database name, and collection name.
func NewMongoMazeRepo(client *mongo.Client, dbName, collectionName string) *MongoMazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoMazeRepo{
		collection: collection,
	}
}

// Save inserts or updates a maze in the repository.
func (r *MongoMazeRepo) Save(ctx context.Context, m *dmn.Maze) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	doc := toDocument(m)
	filter := bson.M{"_id": doc.ID}
	update := bson.M{
		"$set": bson.M{
			"width":     doc.Width,
			"height":    doc.Height,
			"seed":      doc.Seed,
			"cells":     doc.Cells,
			"createdAt": doc.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("saving maze %s: %w", m.ID, err)
	}
	return nil
}

// ByID retrieves a maze by its ID.
func (r *MongoMazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var doc mazeDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", dmn.ErrMazeNotFound, id)
		}
		return nil, fmt.Errorf("loading maze %s: %w", id, err)
	}
	return fromDocument(doc)
}

// List returns up to limit mazes, newest first, without their cells.
func (r *MongoMazeRepo) List(ctx context.Context, limit int) ([]dmn.MazeMeta, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"cells": 0})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing mazes: %w", err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []mazeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("listing mazes: %w", err)
	}

	metas := make([]dmn.MazeMeta, 0, len(docs))
	for _, doc := range docs {
		metas = append(metas, dmn.MazeMeta{
			ID:        doc.ID,
			Width:     doc.Width,
			Height:    doc.Height,
			Seed:      doc.Seed,
			CreatedAt: doc.CreatedAt,
		})
	}
	return metas, nil
}

// Delete removes a maze by its ID.
func (r *MongoMazeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting maze %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", dmn.ErrMazeNotFound, id)
	}
	return nil
}

func toDocument(m *dmn.Maze) mazeDocument {
	doc := mazeDocument{
		ID:        m.ID,
		Width:     m.Width(),
		Height:    m.Height(),
		Seed:      m.Seed,
		Cells:     make([]cellDocument, 0, m.Grid.Size()),
		CreatedAt: m.CreatedAt,
	}
	m.Grid.Walk(func(p maze.Position, c maze.Cell) {
		doc.Cells = append(doc.Cells, cellDocument{
			X:       p.X,
			Y:       p.Y,
			Left:    c.LeftWall,
			Up:      c.UpWall,
			Right:   c.RightWall,
			Down:    c.DownWall,
			Visited: c.Visited,
		})
	})
	return doc
}

func fromDocument(doc mazeDocument) (*dmn.Maze, error) {
	g, err := maze.New(doc.Width, doc.Height)
	if err != nil {
		return nil, fmt.Errorf("maze %s: %w", doc.ID, err)
	}
	if len(doc.Cells) != g.Size() {
		return nil, fmt.Errorf("maze %s: %d cells stored for %dx%d grid", doc.ID, len(doc.Cells), doc.Width, doc.Height)
	}

	for _, cd := range doc.Cells {
		cell, err := g.At(cd.X, cd.Y)
		if err != nil {
			return nil, fmt.Errorf("maze %s: %w", doc.ID, err)
		}
		*cell = maze.Cell{
			LeftWall:  cd.Left,
			UpWall:    cd.Up,
			RightWall: cd.Right,
			DownWall:  cd.Down,
			Visited:   cd.Visited,
		}
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("maze %s: %w", doc.ID, err)
	}

	return &dmn.Maze{
		ID:        doc.ID,
		Seed:      doc.Seed,
		Grid:      g,
		CreatedAt: doc.CreatedAt,
	}, nil
}
