package controllers

import (
	"context"

	"inkwell/inkwell/sources/psql/dao"
	"inkwell/inkwell/sources/psql/models"

	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	users    *dao.UserDAO
	sessions *dao.SessionDAO
}

func NewAuthController(users *dao.UserDAO, sessions *dao.SessionDAO) *AuthController {
	return &AuthController{
		users:    users,
		sessions: sessions,
	}
}

// Register hashes the password and creates the account. It does not log the
// user in; the route redirects to /login on success. No pre-check for
// duplicate emails: if the store rejects the insert, that surfaces as a
// server error.
func (c *AuthController) Register(ctx context.Context, username, email, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = c.users.CreateUser(ctx, username, email, string(hash))
	return err
}

// Login verifies the credentials and opens a session. Unknown email and bad
// password are indistinguishable to the caller.
func (c *AuthController) Login(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := c.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return c.sessions.CreateSession(ctx, user.ID)
}

// Logout drops the session row. Tokens that no longer exist are fine.
func (c *AuthController) Logout(ctx context.Context, token string) error {
	return c.sessions.DeleteSession(ctx, token)
}
