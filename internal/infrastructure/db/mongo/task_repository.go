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
)

const collectionTasks = "tasks"

type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type taskDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`
	CreatedOn   time.Time          `bson:"created_on"`
	Points      int                `bson:"points"`
	MissionID   string             `bson:"mission_id"`
	CategoryID  string             `bson:"category_id"`
	UserID      string             `bson:"user_id"`
}

func toTaskDoc(t *domain.Task) taskDoc {
	return taskDoc{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedOn:   t.CreatedOn,
		Points:      t.Points,
		MissionID:   t.MissionID,
		CategoryID:  t.CategoryID,
		UserID:      t.UserID,
	}
}

func (d *taskDoc) toDomain() *domain.Task {
	return &domain.Task{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		CreatedOn:   d.CreatedOn.UTC(),
		Points:      d.Points,
		MissionID:   d.MissionID,
		CategoryID:  d.CategoryID,
		UserID:      d.UserID,
	}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toTaskDoc(t))
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	created := *t
	created.ID = insertedID(res)
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := objectID(id, domain.ErrTaskNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d taskDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return d.toDomain(), nil
}

func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	return r.find(ctx, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// ListPage returns page (zero-based) of size tasks in insertion order plus
// the total number of tasks.
func (r *TaskRepository) ListPage(ctx context.Context, page, size int) ([]*domain.Task, int64, error) {
	total, err := r.count(ctx)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page) * int64(size)).
		SetLimit(int64(size))
	tasks, err := r.find(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (r *TaskRepository) count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (r *TaskRepository) find(ctx context.Context, opts *options.FindOptions) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, docs[i].toDomain())
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	oid, err := objectID(t.ID, domain.ErrTaskNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toTaskDoc(t))
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTaskNotFound
	}
	updated := *t
	return &updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrTaskNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
