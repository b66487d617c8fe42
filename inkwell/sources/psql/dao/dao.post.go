package dao

import (
	"context"

	"inkwell/inkwell/sources/psql/models"

	"gorm.io/gorm"
)

const authorSelect = "posts.id, posts.title, posts.content, posts.image, posts.user_id, users.username AS author"

type PostDAO struct {
	DB *gorm.DB
}

func NewPostDAO(db *gorm.DB) *PostDAO {
	return &PostDAO{DB: db}
}

func (dao *PostDAO) joined(ctx context.Context) *gorm.DB {
	return dao.DB.WithContext(ctx).
		Model(&models.Post{}).
		Select(authorSelect).
		Joins("JOIN users ON users.id = posts.user_id")
}

// GetAllPosts returns every post newest-first, each with its author's username.
func (dao *PostDAO) GetAllPosts(ctx context.Context) ([]models.PostWithAuthor, error) {
	var posts []models.PostWithAuthor
	err := dao.joined(ctx).Order("posts.id DESC").Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetFeaturedPost picks one post uniformly at random. Nil when the table is
// empty.
func (dao *PostDAO) GetFeaturedPost(ctx context.Context) (*models.PostWithAuthor, error) {
	var posts []models.PostWithAuthor
	err := dao.joined(ctx).Order("RANDOM()").Limit(1).Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

func (dao *PostDAO) GetPostsByUser(ctx context.Context, userID int) ([]models.PostWithAuthor, error) {
	var posts []models.PostWithAuthor
	err := dao.joined(ctx).Where("posts.user_id = ?", userID).Order("posts.id DESC").Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (dao *PostDAO) GetPostByID(ctx context.Context, id int) (*models.PostWithAuthor, error) {
	var posts []models.PostWithAuthor
	err := dao.joined(ctx).Where("posts.id = ?", id).Limit(1).Scan(&posts).Error
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// GetOwnedPost fetches a post only when it belongs to userID. Nil covers both
// "no such post" and "not yours" so callers cannot tell the difference.
func (dao *PostDAO) GetOwnedPost(ctx context.Context, id, userID int) (*models.Post, error) {
	var post models.Post
	err := dao.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&post).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (dao *PostDAO) CreatePost(ctx context.Context, post *models.Post) error {
	return dao.DB.WithContext(ctx).Create(post).Error
}

// UpdatePost applies updates in a single statement scoped by both id and
// owner, returning how many rows matched. Ownership is never checked by a
// prior fetch.
func (dao *PostDAO) UpdatePost(ctx context.Context, id, userID int, updates map[string]interface{}) (int64, error) {
	res := dao.DB.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// DeletePost removes the post only if userID owns it. A miss is a silent
// no-op.
func (dao *PostDAO) DeletePost(ctx context.Context, id, userID int) error {
	return dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Post{}).Error
}
