package logger

import "testing"

func TestIsRedactKey(t *testing.T) {
	for _, key := range []string{"token", "access_token", "password", "jwt_secret_key", "cookie", "email", "refresh_token", "authorization"} {
		if !isRedactKey(key) {
			t.Fatalf("expected %q to be redacted", key)
		}
	}
	for _, key := range []string{"slug", "port", "course", "error"} {
		if isRedactKey(key) {
			t.Fatalf("did not expect %q to be redacted", key)
		}
	}
}

func TestIsHashKey(t *testing.T) {
	for _, key := range []string{"user_id", "owner_id", "session_id"} {
		if !isHashKey(key) {
			t.Fatalf("expected %q to be hashed", key)
		}
	}
	if isHashKey("slug") {
		t.Fatalf("did not expect slug to be hashed")
	}
}

func TestHashValueStableAndShort(t *testing.T) {
	a := hashValue("some-user-id")
	b := hashValue("some-user-id")
	if a != b {
		t.Fatalf("hash not stable: %q vs %q", a, b)
	}
	if a == "some-user-id" || len(a) > len("hash:")+12 {
		t.Fatalf("unexpected hash form: %q", a)
	}
	if hashValue("") != "" {
		t.Fatalf("empty value should stay empty")
	}
}

func TestLooksLikeJWT(t *testing.T) {
	if !looksLikeJWT("eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0In0.sig") {
		t.Fatalf("expected jwt shape to match")
	}
	if looksLikeJWT("just a sentence. with dots. three") {
		t.Fatalf("short segments should not match")
	}
	if looksLikeJWT("plain-string") {
		t.Fatalf("plain string should not match")
	}
}
