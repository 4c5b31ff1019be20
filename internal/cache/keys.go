package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "courseconv"

	// Services and object types used by the converter.
	ServiceTemplates = "templates"
	ObjectRaw        = "raw"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// TemplateKey is the cache key of a raw template file. The modification time
// is part of the key so an edited file is never served stale.
func TemplateKey(path string, modUnixNano int64) string {
	return GenerateCacheKey(ServiceTemplates, ObjectRaw, path, strconv.FormatInt(modUnixNano, 10))
}
