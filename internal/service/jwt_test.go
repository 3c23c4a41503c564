package service

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatal(err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != 42 {
		t.Fatalf("user id = %d; want 42", userID)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	for _, tok := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := ParseJWT(tok); err == nil {
			t.Fatalf("ParseJWT(%q) should fail", tok)
		}
	}
}
