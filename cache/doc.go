// Package cache provides Memo, a small generic memo table with hit/miss
// accounting. One Memo belongs to one solve call; it is not safe for
// concurrent use and is discarded with the search that created it.
package cache
