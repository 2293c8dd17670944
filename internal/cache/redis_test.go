package cache

import (
	"strings"
	"testing"
)

func TestKey(t *testing.T) {
	k := Key("https://example.com/pub?output=csv")
	if !strings.HasPrefix(k, "ffstats:csv:") || !strings.HasSuffix(k, "output=csv") {
		t.Errorf("unexpected key %q", k)
	}
}

func TestNewRedisCache_BadURL(t *testing.T) {
	if _, err := NewRedisCache("not a url", 0); err == nil {
		t.Error("expected error for malformed url")
	}
}
