package dp

var ShardIndex = shardIndex
