package xkv

import (
	"github.com/zeromicro/go-zero/core/stores/kv"
)

// Store 对 go-zero kv.Store 的浅封装
// 直接内嵌 kv.Store, 对外暴露 Get/Setex/Sadd/Spop 等方法
type Store struct {
	kv.Store
}

// NewStore 创建 Store 实例
func NewStore(c kv.KvConf) *Store {
	return &Store{
		Store: kv.NewStore(c),
	}
}
