package usecase

import (
	"context"
	"strings"
	"sync"

	"vendeya/internal/domain/entity"
	"vendeya/internal/domain/repository"
	"vendeya/pkg/errors"
)

// CategoryUseCase owns the category tree used by the admin screens and
// the product filters. The backend hands back a flat parent-referenced
// list; the tree is assembled and walked recursively here, at whatever
// depth it happens to have.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository

	mu     sync.RWMutex
	roots  []*entity.Category
	errMsg string
}

func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

func (uc *CategoryUseCase) Load(ctx context.Context) error {
	flat, err := uc.categoryRepo.List(ctx)
	if err != nil {
		uc.mu.Lock()
		uc.errMsg = errors.UserMessage(err)
		uc.mu.Unlock()
		return err
	}

	uc.mu.Lock()
	uc.roots = buildTree(flat)
	uc.errMsg = ""
	uc.mu.Unlock()
	return nil
}

func buildTree(flat []entity.Category) []*entity.Category {
	nodes := make(map[int]*entity.Category, len(flat))
	for i := range flat {
		category := flat[i]
		category.Children = nil
		nodes[category.ID] = &category
	}

	var roots []*entity.Category
	for i := range flat {
		node := nodes[flat[i].ID]
		if parent, ok := nodes[node.ParentID]; ok && node.ParentID != node.ID {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots
}

func (uc *CategoryUseCase) Create(ctx context.Context, name string, parentID int) (*entity.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.BadRequest("El nombre de la categoría es obligatorio", nil)
	}

	category, err := uc.categoryRepo.Create(ctx, strings.TrimSpace(name), parentID)
	if err != nil {
		uc.mu.Lock()
		uc.errMsg = errors.UserMessage(err)
		uc.mu.Unlock()
		return nil, err
	}

	if err := uc.Load(ctx); err != nil {
		return category, err
	}
	return category, nil
}

// FlatCategory is one row of the depth-first flattening, for selects and
// indented admin listings.
type FlatCategory struct {
	ID    int
	Name  string
	Depth int
}

func (uc *CategoryUseCase) Flatten() []FlatCategory {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	var flat []FlatCategory
	for _, root := range uc.roots {
		flat = appendSubtree(flat, root, 0)
	}
	return flat
}

func appendSubtree(flat []FlatCategory, node *entity.Category, depth int) []FlatCategory {
	flat = append(flat, FlatCategory{ID: node.ID, Name: node.Name, Depth: depth})
	for _, child := range node.Children {
		flat = appendSubtree(flat, child, depth+1)
	}
	return flat
}

func (uc *CategoryUseCase) Find(id int) *entity.Category {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for _, root := range uc.roots {
		if found := findInSubtree(root, id); found != nil {
			return found
		}
	}
	return nil
}

func findInSubtree(node *entity.Category, id int) *entity.Category {
	if node.ID == id {
		return node
	}
	for _, child := range node.Children {
		if found := findInSubtree(child, id); found != nil {
			return found
		}
	}
	return nil
}

func (uc *CategoryUseCase) Roots() []*entity.Category {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.roots
}

func (uc *CategoryUseCase) Error() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.errMsg
}
