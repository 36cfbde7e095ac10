package dao

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
)

// GetUser 按 ID 查询用户
// 用户不存在时返回 (nil, nil), 由上层决定是否视为错误
func (d *Dao) GetUser(ctx context.Context, userID int64) (*base.User, error) {
	var user base.User
	db := d.DB.WithContext(ctx).Table(base.UserTableName()).
		Where("id = ?", userID).
		Find(&user)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on get user info")
	}

	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

// GetUsers 批量查询用户, 返回 id -> user 映射
// 用于出价记录展示时一次性取回所有出价人
func (d *Dao) GetUsers(ctx context.Context, userIDs []int64) (map[int64]base.User, error) {
	users := make(map[int64]base.User, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	var rows []base.User
	db := d.DB.WithContext(ctx).Table(base.UserTableName()).
		Where("id in (?)", userIDs).
		Find(&rows)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on batch get users")
	}

	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}
