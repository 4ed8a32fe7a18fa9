package redis

import (
	"testing"

	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/logger"
)

func TestNewCacheRequiresAddr(t *testing.T) {
	if _, err := NewCache(logger.Nop(), Config{Addr: "  "}); err == nil {
		t.Fatalf("NewCache: expected error for empty addr")
	}
	if _, err := NewCache(nil, Config{Addr: "localhost:6379"}); err == nil {
		t.Fatalf("NewCache: expected error for nil logger")
	}
}

func TestCacheKeyIsPrefixed(t *testing.T) {
	c := &cache{prefix: "smarthustle"}
	if got := c.key("analytics:stats"); got != "smarthustle:analytics:stats" {
		t.Fatalf("key: got=%q", got)
	}
}
