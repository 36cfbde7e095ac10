package base

// User 用户 (本服务只消费评价计数与展示名)
type User struct {
	ID             int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Nickname       string `gorm:"column:nickname;type:varchar(128);not null" json:"nickname"`            // 展示名, 出价记录里对外脱敏
	PositiveRating int    `gorm:"column:positive_rating;not null;default:0" json:"positive_rating"`      // 好评数
	NegativeRating int    `gorm:"column:negative_rating;not null;default:0" json:"negative_rating"`      // 差评数
	CreateTime     int64  `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime     int64  `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

func UserTableName() string {
	return "ea_user"
}

func (User) TableName() string {
	return UserTableName()
}
