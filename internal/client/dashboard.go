// ABOUTME: Dashboard aggregate endpoint
// ABOUTME: One call returning expiring food, shopping, meal plans and trends

package client

import (
	"context"

	"github.com/00rei000/Smart-Grocery-Management-System/internal/models"
)

// Dashboard fetches the home screen summary
func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var d models.Dashboard
	if err := c.get(ctx, "/dashboard/", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
