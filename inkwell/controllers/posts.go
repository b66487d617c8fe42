package controllers

import (
	"context"
	"mime/multipart"

	"inkwell/inkwell/sources/psql/dao"
	"inkwell/inkwell/sources/psql/models"
	"inkwell/inkwell/sources/uploads"
)

type PostsController struct {
	posts *dao.PostDAO
	store *uploads.Store
}

func NewPostsController(posts *dao.PostDAO, store *uploads.Store) *PostsController {
	return &PostsController{
		posts: posts,
		store: store,
	}
}

func (c *PostsController) GetAllPosts(ctx context.Context) ([]models.PostWithAuthor, error) {
	return c.posts.GetAllPosts(ctx)
}

func (c *PostsController) GetFeaturedPost(ctx context.Context) (*models.PostWithAuthor, error) {
	return c.posts.GetFeaturedPost(ctx)
}

func (c *PostsController) GetPostsByUser(ctx context.Context, userID int) ([]models.PostWithAuthor, error) {
	return c.posts.GetPostsByUser(ctx, userID)
}

func (c *PostsController) GetPost(ctx context.Context, id int) (*models.PostWithAuthor, error) {
	post, err := c.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetOwnedPost backs the edit form. ErrNotFound covers both a missing post
// and someone else's post.
func (c *PostsController) GetOwnedPost(ctx context.Context, id, userID int) (*models.Post, error) {
	post, err := c.posts.GetOwnedPost(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// CreatePost stores the image first (when one was uploaded), then inserts the
// row. A failed insert leaves the file behind; nothing rolls it back.
func (c *PostsController) CreatePost(ctx context.Context, userID int, title, content string, file multipart.File, header *multipart.FileHeader) (*models.Post, error) {
	var image *string
	if file != nil {
		path, err := c.store.Save(file, header)
		if err != nil {
			return nil, err
		}
		image = &path
	}
	post := &models.Post{
		Title:   title,
		Content: content,
		Image:   image,
		UserID:  userID,
	}
	if err := c.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost rewrites title and content; the image column is only touched
// when a new file came with the form. The mutation is scoped to the owner in
// one statement, so a non-owner's attempt matches zero rows and comes back as
// ErrNotFound.
func (c *PostsController) UpdatePost(ctx context.Context, id, userID int, title, content string, file multipart.File, header *multipart.FileHeader) error {
	updates := map[string]interface{}{
		"title":   title,
		"content": content,
	}
	if file != nil {
		path, err := c.store.Save(file, header)
		if err != nil {
			return err
		}
		updates["image"] = path
	}
	affected, err := c.posts.UpdatePost(ctx, id, userID, updates)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost is idempotent: deleting a missing or non-owned post does
// nothing and reports nothing.
func (c *PostsController) DeletePost(ctx context.Context, id, userID int) error {
	return c.posts.DeletePost(ctx, id, userID)
}
