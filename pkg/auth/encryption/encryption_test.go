package encryption

import (
	"testing"
)

func TestEncryptDecryptRoundtrip(t *testing.T) {
	encrypted, err := Encrypt("ya29.a0ARrdaM-access-token")
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}

	if encrypted == "ya29.a0ARrdaM-access-token" {
		t.Fatal("ciphertext equals plaintext")
	}

	decrypted, err := Decrypt(encrypted)
	if err != nil {
		t.Fatalf("decryption failed: %v", err)
	}

	if decrypted != "ya29.a0ARrdaM-access-token" {
		t.Errorf("decrypted = %q", decrypted)
	}
}

func TestDecryptRejectsGarbage(t *testing.T) {
	if _, err := Decrypt("not-hex"); err == nil {
		t.Error("garbage input decrypted without error")
	}

	if _, err := Decrypt("abcd"); err == nil {
		t.Error("too short ciphertext decrypted without error")
	}
}
