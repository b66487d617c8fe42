package dao

import (
	"context"
	"time"

	"inkwell/inkwell/sources/psql/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sessions live for a day server-side; the cookie itself is browser-session
// scoped.
const SessionTTL = 24 * time.Hour

type SessionDAO struct {
	DB *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{DB: db}
}

func (dao *SessionDAO) CreateSession(ctx context.Context, userID int) (*models.Session, error) {
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	err := dao.DB.WithContext(ctx).Create(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSessionByToken resolves a cookie token. Expired or unknown tokens come
// back nil, not as errors.
func (dao *SessionDAO) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := dao.DB.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	return &session, nil
}

func (dao *SessionDAO) DeleteSession(ctx context.Context, token string) error {
	return dao.DB.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

func (dao *SessionDAO) DeleteExpired(ctx context.Context) error {
	return dao.DB.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}
