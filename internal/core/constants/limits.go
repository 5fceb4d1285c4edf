package constants

const (
	// Timestamp log capacity bounds
	MinCapacity     = 20
	MaxCapacity     = 50
	DefaultCapacity = MinCapacity

	// Persistent storage keys
	NumItemsStorageKey  uint32 = 0
	TimestampStorageKey uint32 = 1

	// Maximum size of a single data value in the key-value store
	MaxDataSize = 2048

	// Rendered row cache size
	RowCacheSize = 4 * MaxCapacity
)

const (
	AppName          = "go-stampwatch"
	DefaultHomeDir   = "~/.go-stampwatch"
	DefaultLogFile   = DefaultHomeDir + "/logs/app.log"
	DefaultStorePath = DefaultHomeDir + "/store.json"
	DefaultConfig    = DefaultHomeDir + "/config.yaml"
)
