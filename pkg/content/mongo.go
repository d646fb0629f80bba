package content

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nekodev/skillring/pkg/errors"
	"github.com/nekodev/skillring/pkg/symbols"
)

// cardFinder is the subset of *mongo.Collection used by MongoSource.
type cardFinder interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// cardDocument is the stored form of a card. Cards are ordered by Order.
type cardDocument struct {
	Order       int    `bson:"order"`
	Icon        string `bson:"icon"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Color       string `bson:"color"`
	ColorRGB    string `bson:"colorRgb"`
}

// MongoSource reads a deck from a MongoDB collection, one document per card.
type MongoSource struct {
	coll   cardFinder
	client *mongo.Client
}

// NewMongoSource reads cards from coll.
func NewMongoSource(coll *mongo.Collection) *MongoSource {
	return &MongoSource{coll: coll}
}

// DialMongo connects to uri and reads cards from database.collection. The
// returned source owns the client; call Close when done.
func DialMongo(ctx context.Context, uri, database, collection string) (*MongoSource, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return &MongoSource{
		coll:   client.Database(database).Collection(collection),
		client: client,
	}, nil
}

// Load fetches every card in ascending order.
func (s *MongoSource) Load(ctx context.Context) (*Deck, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query cards")
	}
	defer cur.Close(ctx)

	var docs []cardDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidContent, err, "decode cards")
	}

	cards := make([]Card, 0, len(docs))
	for _, doc := range docs {
		icon, err := symbols.Parse(doc.Icon)
		if err != nil {
			return nil, err
		}
		cards = append(cards, Card{
			Icon:        icon,
			Title:       doc.Title,
			Description: doc.Description,
			Color:       doc.Color,
			ColorRGB:    doc.ColorRGB,
		})
	}
	return NewDeck(cards...)
}

// Close disconnects the client opened by DialMongo.
func (s *MongoSource) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
