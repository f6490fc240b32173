package domain

import "errors"

// Named caches fronting the store. A plural name holds listings, a singular
// name holds single items keyed by id.
const (
	CacheTasks      = "tasks"
	CacheTask       = "task"
	CacheCategories = "categories"
	CacheCategory   = "category"
	CacheMissions   = "missions"
	CacheMission    = "mission"
	CacheRewards    = "rewards"
	CacheReward     = "reward"
	CacheUsers      = "users"
)

// CacheNames lists every cache in a stable order.
var CacheNames = []string{
	CacheTasks, CacheTask,
	CacheCategories, CacheCategory,
	CacheMissions, CacheMission,
	CacheRewards, CacheReward,
	CacheUsers,
}

var ErrUnknownCache = errors.New("cache not found")
