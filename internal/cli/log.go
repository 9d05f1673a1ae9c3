package cli

import "go.uber.org/zap"

func zapKey(key string) zap.Field {
	return zap.String("key", key)
}

func zapValue(value string) zap.Field {
	return zap.String("value", value)
}
