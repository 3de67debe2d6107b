package utils

import (
	"regexp"
	"testing"
)

func TestGenerateUUID(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateUUID()
		if !re.MatchString(id) {
			t.Fatalf("UUID không đúng định dạng v4: %s", id)
		}
		if seen[id] {
			t.Fatalf("UUID trùng lặp: %s", id)
		}
		seen[id] = true
	}
}

func TestGenerateShortID(t *testing.T) {
	id := GenerateShortID()
	if len(id) != 8 {
		t.Fatalf("Short ID phải có 8 ký tự, nhận được %q", id)
	}
}
