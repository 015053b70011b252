package session

import (
	"taskflow/internal/core/domain/user"
	"testing"
)

func TestSessionTokenGenerator(t *testing.T) {
	generator := NewUUID()
	tokens := make(map[user.SessionToken]struct{})
	for i := 0; i < 100; i++ {
		token := generator.GenerateSessionToken()
		if string(token) == "" {
			t.Fatal("token must not be empty")
		}
		if _, ok := tokens[token]; ok {
			t.Fatalf("token %v already exists (%v)", token, tokens)
		}
		tokens[token] = struct{}{}
	}
}
