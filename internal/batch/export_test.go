package batch

var PoolSize = poolSize
