package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"equipment-rental/internal/data/entity"
	"equipment-rental/internal/data/repository"

	"github.com/google/uuid"
)

type ClientRepository struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*entity.Client
}

var _ repository.ClientRepository = (*ClientRepository)(nil)

func NewClientRepository() *ClientRepository {
	return &ClientRepository{clients: make(map[uuid.UUID]*entity.Client)}
}

func (r *ClientRepository) Create(_ context.Context, client *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[client.ID]; ok {
		return fmt.Errorf("client %s already exists", client.ID.String())
	}
	stored := *client
	r.clients[client.ID] = &stored
	return nil
}

func (r *ClientRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok || client.IsDeleted() {
		return nil, nil
	}
	out := *client
	return &out, nil
}

type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]*entity.Project
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[uuid.UUID]*entity.Project)}
}

func (r *ProjectRepository) Create(_ context.Context, project *entity.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[project.ID]; ok {
		return fmt.Errorf("project %s already exists", project.ID.String())
	}
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

func (r *ProjectRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok || project.IsDeleted() {
		return nil, nil
	}
	out := *project
	return &out, nil
}

type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*entity.Category
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *CategoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.ID]; ok {
		return fmt.Errorf("category %s already exists", category.ID.String())
	}
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	out := *category
	return &out, nil
}

// SequenceRepository backs the barcode counter with an atomic integer, the
// in-process equivalent of the single-statement UPDATE ... RETURNING bump.
type SequenceRepository struct {
	value atomic.Int64
}

var _ repository.SequenceRepository = (*SequenceRepository)(nil)

func NewSequenceRepository() *SequenceRepository {
	return &SequenceRepository{}
}

func (r *SequenceRepository) Next(_ context.Context) (int64, error) {
	return r.value.Add(1), nil
}
