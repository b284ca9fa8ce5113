package constant

const (
	StateStoreMemory = "memory"
	StateStoreRedis  = "redis"

	// Durable consumer names get the instance id appended so that every
	// instance sees every FAQ change.
	FaqEventsDurablePrefix = "faq-cache-"
)
