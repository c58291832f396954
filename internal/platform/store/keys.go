package store

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
)

// Key builds the cache key for one repository operation:
// <repository>:<entity>:<operation>:<digest>. Arguments are serialized in a
// stable order and folded into a sha256 digest so keys stay bounded no
// matter how large the filter set is.
func Key(repository, entity, operation string, args ...any) string {
	h := sha256.Sum256([]byte(serializeArgs(args)))
	return fmt.Sprintf("%s:%s:%s:%x", repository, entity, operation, h)
}

func serializeArgs(args []any) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, serializeArg(a))
	}
	return strings.Join(parts, "|")
}

// serializeArg renders one argument deterministically. Maps are the only
// unordered input, so their keys are sorted before rendering.
func serializeArg(a any) string {
	switch v := a.(type) {
	case nil:
		return "<nil>"
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, k+"="+v[k])
		}
		return "{" + strings.Join(pairs, ",") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
