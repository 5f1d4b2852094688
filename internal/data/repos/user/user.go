package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/rentals-backend/internal/data/store"
	types "github.com/yungbote/rentals-backend/internal/domain"
	"github.com/yungbote/rentals-backend/internal/domain/errs"
	"github.com/yungbote/rentals-backend/internal/platform/dbctx"
	"github.com/yungbote/rentals-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.User, error)
	GetByUsername(dbc dbctx.Context, username string) (*types.User, error)
	UsernameExists(dbc dbctx.Context, username string) (bool, error)
	DeleteNonSuperusers(dbc dbctx.Context) (int64, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := dbc.DB(r.db).Create(&users).Error; err != nil {
		return nil, store.MapError("user.create", err)
	}
	return users, nil
}

func (r *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.User, error) {
	if id == uuid.Nil {
		return nil, errs.NotFound("user.get", "User not found.")
	}
	var u types.User
	if err := dbc.DB(r.db).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, store.MapError("user.get", err)
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(dbc dbctx.Context, username string) (*types.User, error) {
	var u types.User
	if err := dbc.DB(r.db).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, store.MapError("user.get_by_username", err)
	}
	return &u, nil
}

func (r *userRepo) UsernameExists(dbc dbctx.Context, username string) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, store.MapError("user.username_exists", err)
	}
	return count > 0, nil
}

func (r *userRepo) DeleteNonSuperusers(dbc dbctx.Context) (int64, error) {
	res := dbc.DB(r.db).Where("is_superuser = ?", false).Delete(&types.User{})
	if res.Error != nil {
		return 0, store.MapError("user.delete_non_superusers", res.Error)
	}
	return res.RowsAffected, nil
}
