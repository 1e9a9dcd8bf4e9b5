package security

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("password stored in the clear")
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword("wrong password", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if VerifyPassword("anything", "") {
		t.Fatal("empty hash accepted")
	}
	if VerifyPassword("anything", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash accepted")
	}
}

func TestSessionHandleShape(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		handle, err := NewSessionHandle()
		if err != nil {
			t.Fatalf("new handle: %v", err)
		}
		if len(handle) != len("session_")+64 {
			t.Fatalf("unexpected handle length %d: %q", len(handle), handle)
		}
		if handle[:len("session_")] != "session_" {
			t.Fatalf("missing prefix: %q", handle)
		}
		if _, dup := seen[handle]; dup {
			t.Fatalf("duplicate handle: %q", handle)
		}
		seen[handle] = struct{}{}
	}
}
