// ABOUTME: Family and family member endpoints
// ABOUTME: CRUD over /users/families/ and /users/family-members/

package client

import (
	"context"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

const (
	familiesPath      = "/users/families/"
	familyMembersPath = "/users/family-members/"
)

// ListFamilies returns families visible to the current user
func (c *Client) ListFamilies(ctx context.Context) ([]models.Family, error) {
	var families []models.Family
	if err := c.get(ctx, familiesPath, nil, &families); err != nil {
		return nil, err
	}
	return families, nil
}

// CreateFamily creates a family
func (c *Client) CreateFamily(ctx context.Context, in models.FamilyInput) (*models.Family, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var family models.Family
	if err := c.post(ctx, familiesPath, in, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

// RenameFamily changes a family's name
func (c *Client) RenameFamily(ctx context.Context, id int, in models.FamilyInput) (*models.Family, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var family models.Family
	if err := c.patch(ctx, idPath(familiesPath, id), in, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

// DeleteFamily removes a family
func (c *Client) DeleteFamily(ctx context.Context, id int) error {
	return c.delete(ctx, idPath(familiesPath, id), nil)
}

// ListFamilyMembers returns every member the user can see
func (c *Client) ListFamilyMembers(ctx context.Context) ([]models.FamilyMember, error) {
	var members []models.FamilyMember
	if err := c.get(ctx, familyMembersPath, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// CreateFamilyMember adds a member to a family
func (c *Client) CreateFamilyMember(ctx context.Context, in models.FamilyMemberInput) (*models.FamilyMember, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var member models.FamilyMember
	if err := c.post(ctx, familyMembersPath, in, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateFamilyMember edits a member
func (c *Client) UpdateFamilyMember(ctx context.Context, id int, in models.FamilyMemberInput) (*models.FamilyMember, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var member models.FamilyMember
	if err := c.patch(ctx, idPath(familyMembersPath, id), in, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// DeleteFamilyMember removes a member
func (c *Client) DeleteFamilyMember(ctx context.Context, id int) error {
	return c.delete(ctx, idPath(familyMembersPath, id), nil)
}
