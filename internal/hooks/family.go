// ABOUTME: Family and family member hooks
// ABOUTME: Members are grouped by family for display

package hooks

import (
	"context"
	"sort"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/cache"
	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

type FamilyAPI interface {
	ListFamilies(ctx context.Context) ([]models.Family, error)
	CreateFamily(ctx context.Context, in models.FamilyInput) (*models.Family, error)
	RenameFamily(ctx context.Context, id int, in models.FamilyInput) (*models.Family, error)
	DeleteFamily(ctx context.Context, id int) error

	ListFamilyMembers(ctx context.Context) ([]models.FamilyMember, error)
	CreateFamilyMember(ctx context.Context, in models.FamilyMemberInput) (*models.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, id int, in models.FamilyMemberInput) (*models.FamilyMember, error)
	DeleteFamilyMember(ctx context.Context, id int) error
}

type Families struct {
	*Resource[models.Family]
	api FamilyAPI
}

func NewFamilies(api FamilyAPI, c *cache.Cache) *Families {
	return &Families{Resource: NewResource("families", c, api.ListFamilies), api: api}
}

func (h *Families) Create(ctx context.Context, name string) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.CreateFamily(ctx, models.FamilyInput{Name: name})
		return err
	})
}

func (h *Families) Rename(ctx context.Context, id int, name string) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.RenameFamily(ctx, id, models.FamilyInput{Name: name})
		return err
	})
}

func (h *Families) Delete(ctx context.Context, id int) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		return h.api.DeleteFamily(ctx, id)
	})
}

// Name returns the family's name, or "" when it is not loaded
func (h *Families) Name(id int) string {
	f, _ := h.find(func(f models.Family) bool { return f.ID == id })
	return f.Name
}

type FamilyMembers struct {
	*Resource[models.FamilyMember]
	api FamilyAPI
}

func NewFamilyMembers(api FamilyAPI, c *cache.Cache) *FamilyMembers {
	return &FamilyMembers{Resource: NewResource("family:members", c, api.ListFamilyMembers), api: api}
}

func (h *FamilyMembers) Add(ctx context.Context, in models.FamilyMemberInput) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.CreateFamilyMember(ctx, in)
		return err
	})
}

func (h *FamilyMembers) Update(ctx context.Context, id int, in models.FamilyMemberInput) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		_, err := h.api.UpdateFamilyMember(ctx, id, in)
		return err
	})
}

func (h *FamilyMembers) Delete(ctx context.Context, id int) error {
	return h.Mutate(ctx, func(ctx context.Context) error {
		return h.api.DeleteFamilyMember(ctx, id)
	})
}

// FamilyGroup is the members sharing one family_id
type FamilyGroup struct {
	FamilyID int
	Members  []models.FamilyMember
}

// ByFamily groups members by family id, ordered by id
func (h *FamilyMembers) ByFamily() []FamilyGroup {
	byID := make(map[int][]models.FamilyMember)
	for _, m := range h.Items() {
		byID[m.FamilyID] = append(byID[m.FamilyID], m)
	}
	groups := make([]FamilyGroup, 0, len(byID))
	for id, members := range byID {
		groups = append(groups, FamilyGroup{FamilyID: id, Members: members})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].FamilyID < groups[j].FamilyID })
	return groups
}
