package credential

import "testing"

func TestIMAPKeyNormalizesUsername(t *testing.T) {
	if got := IMAPKey("  Ravi@Example.com "); got != "imap:ravi@example.com" {
		t.Errorf("IMAPKey = %q", got)
	}
}

func TestIMAPPasswordPrefersEnvironment(t *testing.T) {
	t.Setenv(PasswordEnv, "s3cret")

	pw, err := IMAPPassword("ravi@example.com")
	if err != nil {
		t.Fatalf("IMAPPassword: %v", err)
	}
	if pw != "s3cret" {
		t.Errorf("password = %q, want s3cret", pw)
	}
}
