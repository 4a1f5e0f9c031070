package logging

import (
	"strings"

	"github.com/dlshle/evictcache/gr_context"
)

// goroutine scoped logging context, merged into entries of loggers with GR context enabled

const grPrefix = "$logging_"

func SetGRContext(k, v string) {
	gr_context.Put(grPrefix+k, v)
}

func GetGRContext(k string) string {
	rawValue := gr_context.Get(grPrefix + k)
	if rawValue == nil {
		return ""
	}
	return rawValue.(string)
}

func DeleteGRContext(k string) {
	gr_context.Delete(grPrefix + k)
}

func grContext() map[string]string {
	res := make(map[string]string)
	for k, v := range gr_context.All() {
		if s, ok := v.(string); ok && strings.HasPrefix(k, grPrefix) {
			res[k[len(grPrefix):]] = s
		}
	}
	return res
}
