package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/forgo/freelancehub/api/internal/database"
	"github.com/forgo/freelancehub/api/internal/model"
)

type projectDocument struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Budget      int64     `bson:"budget"`
	TechStack   []string  `bson:"tech_stack"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d projectDocument) model() *model.Project {
	return &model.Project{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Budget:      d.Budget,
		TechStack:   d.TechStack,
		Status:      model.ProjectStatus(d.Status),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// ProjectStore persists projects in the projects collection
type ProjectStore struct {
	coll *mongo.Collection
}

// NewProjectStore creates a project store over the given collection
func NewProjectStore(coll *mongo.Collection) *ProjectStore {
	return &ProjectStore{coll: coll}
}

// Create inserts a project
func (s *ProjectStore) Create(ctx context.Context, project *model.Project) error {
	_, err := s.coll.InsertOne(ctx, projectDocument{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Budget:      project.Budget,
		TechStack:   project.TechStack,
		Status:      string(project.Status),
		CreatedAt:   project.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by ID. Returns nil, nil when absent.
func (s *ProjectStore) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var doc projectDocument
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return doc.model(), nil
}

// Find returns the projects matching every constraint, ordered and paginated by opts
func (s *ProjectStore) Find(ctx context.Context, p model.Predicate, opts model.ListOptions) ([]*model.Project, error) {
	filter, err := renderFilter(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	fo, err := findOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	cursor, err := s.coll.Find(ctx, filter, fo)
	if err != nil {
		return nil, fmt.Errorf("failed to find projects: %w", err)
	}

	var docs []projectDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}

	projects := make([]*model.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, d.model())
	}
	return projects, nil
}

// UpdateStatus sets the status only while the project is still in from.
// It reports whether a document matched.
func (s *ProjectStore) UpdateStatus(ctx context.Context, id string, from, to model.ProjectStatus) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "status", Value: string(from)}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: string(to)}}}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update project status: %w", err)
	}
	return res.MatchedCount > 0, nil
}
