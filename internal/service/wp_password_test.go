package service

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckWordPressPasswordPrehashedBcrypt(t *testing.T) {
	hash, err := HashWordPressPassword("correct horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$wp$2") {
		t.Fatalf("unexpected hash format %s", hash)
	}
	if !CheckWordPressPassword("correct horse", hash) {
		t.Fatalf("expected password to match")
	}
	if CheckWordPressPassword("wrong horse", hash) {
		t.Fatalf("wrong password must not match")
	}
}

func TestCheckWordPressPasswordPlainBcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	phpStyle := "$2y$" + strings.TrimPrefix(string(raw), "$2a$")
	for _, hash := range []string{string(raw), phpStyle} {
		if !CheckWordPressPassword("secret", hash) {
			t.Fatalf("expected %s to match", hash)
		}
		if CheckWordPressPassword("Secret", hash) {
			t.Fatalf("case mismatch must not match %s", hash)
		}
	}
}

func TestCheckWordPressPasswordPhpass(t *testing.T) {
	hash := "$P$9IQRaTwmfeRo7ud9Fh4E2PdI0S3r.L0"
	if !CheckWordPressPassword("test12345", hash) {
		t.Fatalf("expected phpass hash to match")
	}
	if CheckWordPressPassword("test12346", hash) {
		t.Fatalf("wrong password must not match phpass hash")
	}
	if CheckWordPressPassword("test12345", "$P$") {
		t.Fatalf("truncated setting must not match")
	}
}

func TestCheckWordPressPasswordLegacyMD5(t *testing.T) {
	if !CheckWordPressPassword("password", "5f4dcc3b5aa765d61d8327deb882cf99") {
		t.Fatalf("expected md5 hash to match")
	}
	if CheckWordPressPassword("password", "") {
		t.Fatalf("empty hash must not match")
	}
}
