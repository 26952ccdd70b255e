package api

import (
	"context"
	"net/http"
	"strconv"

	"tikeria/internal/models"
)

// GetUser fetches one user's profile
func (c *Client) GetUser(ctx context.Context, token string, id int) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+strconv.Itoa(id), token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyUser records the admin's approve/reject decision for an organizer
// registration
func (c *Client) VerifyUser(ctx context.Context, token string, userID int, req models.VerifyUserRequest) error {
	path := "/api/users/" + strconv.Itoa(userID) + "/verify"
	return c.do(ctx, http.MethodPost, path, token, req, nil)
}
