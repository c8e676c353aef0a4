// ABOUTME: Content moderation endpoints for admins
// ABOUTME: Lists the review queue and approves or rejects entries

package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

const moderationPath = "/moderation/items/"

// ListModeration returns queue entries, filtered by status when set
func (c *Client) ListModeration(ctx context.Context, status models.ModerationStatus) ([]models.ModerationItem, error) {
	st, err := models.ParseModerationStatus(string(status))
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	if st != "" {
		q.Set("status", string(st))
	}
	var items []models.ModerationItem
	if err := c.get(ctx, moderationPath, q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ApproveContent publishes a pending entry
func (c *Client) ApproveContent(ctx context.Context, id int) (*models.ModerationItem, error) {
	var item models.ModerationItem
	if err := c.post(ctx, fmt.Sprintf("%s%d/approve/", moderationPath, id), struct{}{}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RejectContent rejects an entry with a reason shown to its author
func (c *Client) RejectContent(ctx context.Context, id int, in models.RejectInput) (*models.ModerationItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var item models.ModerationItem
	if err := c.post(ctx, fmt.Sprintf("%s%d/reject/", moderationPath, id), in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
