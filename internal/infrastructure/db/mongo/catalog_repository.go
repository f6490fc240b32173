package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecoquest/sustainability-api/internal/core/domain"
	"github.com/ecoquest/sustainability-api/internal/core/ports"
)

const (
	collectionCategories = "categories"
	collectionMissions   = "missions"
	collectionRewards    = "rewards"
)

// catalogRepository stores entity T as document D. toDoc leaves the id unset;
// it is always carried separately as the _id filter.
type catalogRepository[T, D any] struct {
	col      *mongo.Collection
	kind     string
	notFound error
	idOf     func(*T) string
	setID    func(*T, string)
	toDoc    func(*T) D
	fromDoc  func(*D) *T
}

// ── documents ─────────────────────────────────────────────────────────────────

type categoryDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	ImpactLevel string             `bson:"impact_level"`
}

type missionDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	StartDate   time.Time          `bson:"start_date"`
	EndDate     time.Time          `bson:"end_date"`
	Active      bool               `bson:"active"`
}

type rewardDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	RequiredPoints int                `bson:"required_points"`
	Active         bool               `bson:"active"`
}

func NewCategoryRepository(db *mongo.Database) ports.CategoryRepository {
	return &catalogRepository[domain.Category, categoryDoc]{
		col:      db.Collection(collectionCategories),
		kind:     "category",
		notFound: domain.ErrCategoryNotFound,
		idOf:     func(c *domain.Category) string { return c.ID },
		setID:    func(c *domain.Category, id string) { c.ID = id },
		toDoc: func(c *domain.Category) categoryDoc {
			return categoryDoc{Name: c.Name, Description: c.Description, ImpactLevel: string(c.ImpactLevel)}
		},
		fromDoc: func(d *categoryDoc) *domain.Category {
			return &domain.Category{
				ID:          d.ID.Hex(),
				Name:        d.Name,
				Description: d.Description,
				ImpactLevel: domain.ImpactLevel(d.ImpactLevel),
			}
		},
	}
}

func NewMissionRepository(db *mongo.Database) ports.MissionRepository {
	return &catalogRepository[domain.Mission, missionDoc]{
		col:      db.Collection(collectionMissions),
		kind:     "mission",
		notFound: domain.ErrMissionNotFound,
		idOf:     func(m *domain.Mission) string { return m.ID },
		setID:    func(m *domain.Mission, id string) { m.ID = id },
		toDoc: func(m *domain.Mission) missionDoc {
			return missionDoc{
				Name:        m.Name,
				Description: m.Description,
				StartDate:   m.StartDate,
				EndDate:     m.EndDate,
				Active:      m.Active,
			}
		},
		fromDoc: func(d *missionDoc) *domain.Mission {
			return &domain.Mission{
				ID:          d.ID.Hex(),
				Name:        d.Name,
				Description: d.Description,
				StartDate:   d.StartDate.UTC(),
				EndDate:     d.EndDate.UTC(),
				Active:      d.Active,
			}
		},
	}
}

func NewRewardRepository(db *mongo.Database) ports.RewardRepository {
	return &catalogRepository[domain.Reward, rewardDoc]{
		col:      db.Collection(collectionRewards),
		kind:     "reward",
		notFound: domain.ErrRewardNotFound,
		idOf:     func(r *domain.Reward) string { return r.ID },
		setID:    func(r *domain.Reward, id string) { r.ID = id },
		toDoc: func(r *domain.Reward) rewardDoc {
			return rewardDoc{
				Name:           r.Name,
				Description:    r.Description,
				RequiredPoints: r.RequiredPoints,
				Active:         r.Active,
			}
		},
		fromDoc: func(d *rewardDoc) *domain.Reward {
			return &domain.Reward{
				ID:             d.ID.Hex(),
				Name:           d.Name,
				Description:    d.Description,
				RequiredPoints: d.RequiredPoints,
				Active:         d.Active,
			}
		},
	}
}

// ── operations ────────────────────────────────────────────────────────────────

func (r *catalogRepository[T, D]) List(ctx context.Context) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.kind, err)
	}

	items := make([]*T, 0, len(docs))
	for i := range docs {
		items = append(items, r.fromDoc(&docs[i]))
	}
	return items, nil
}

func (r *catalogRepository[T, D]) FindByID(ctx context.Context, id string) (*T, error) {
	oid, err := objectID(id, r.notFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d D
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if isNoDocuments(err) {
			return nil, r.notFound
		}
		return nil, fmt.Errorf("find %s: %w", r.kind, err)
	}
	return r.fromDoc(&d), nil
}

func (r *catalogRepository[T, D]) Create(ctx context.Context, item *T) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := r.toDoc(item)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", r.kind, err)
	}

	created := r.fromDoc(&doc)
	r.setID(created, insertedID(res))
	return created, nil
}

func (r *catalogRepository[T, D]) Update(ctx context.Context, item *T) (*T, error) {
	oid, err := objectID(r.idOf(item), r.notFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := r.toDoc(item)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", r.kind, err)
	}
	if res.MatchedCount == 0 {
		return nil, r.notFound
	}
	updated := r.fromDoc(&doc)
	r.setID(updated, oid.Hex())
	return updated, nil
}

func (r *catalogRepository[T, D]) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, r.notFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.kind, err)
	}
	if res.DeletedCount == 0 {
		return r.notFound
	}
	return nil
}
