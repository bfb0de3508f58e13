package constants

type ContextKey string

const (
	LoggerKey    ContextKey = "logger"
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	ParamsKey    ContextKey = "params"
	RequestStart ContextKey = "requestStart"
)
