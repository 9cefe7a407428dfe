// facebook_test.go
package main

import (
	"strings"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	secret := "test-app-secret"
	body := []byte(`{"object":"page","entry":[]}`)
	validHeader := signBody(body, secret)

	tests := []struct {
		name   string
		body   []byte
		header string
		secret string
		want   bool
	}{
		{
			name:   "valid signature",
			body:   body,
			header: validHeader,
			secret: secret,
			want:   true,
		},
		{
			name:   "tampered body",
			body:   []byte(`{"object":"page","entry":[{}]}`),
			header: validHeader,
			secret: secret,
			want:   false,
		},
		{
			name:   "tampered signature",
			body:   body,
			header: flipLastHexChar(validHeader),
			secret: secret,
			want:   false,
		},
		{
			name:   "wrong secret",
			body:   body,
			header: validHeader,
			secret: "other-secret",
			want:   false,
		},
		{
			name:   "missing header",
			body:   body,
			header: "",
			secret: secret,
			want:   false,
		},
		{
			name:   "missing secret rejects everything",
			body:   body,
			header: validHeader,
			secret: "",
			want:   false,
		},
		{
			name:   "empty body",
			body:   nil,
			header: validHeader,
			secret: secret,
			want:   false,
		},
		{
			name:   "missing scheme prefix",
			body:   body,
			header: strings.TrimPrefix(validHeader, signaturePrefix),
			secret: secret,
			want:   false,
		},
		{
			name:   "malformed hex",
			body:   body,
			header: "sha256=not-valid-hex",
			secret: secret,
			want:   false,
		},
		{
			name:   "truncated signature",
			body:   body,
			header: validHeader[:len(validHeader)-2],
			secret: secret,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := verifySignature(tt.body, tt.header, tt.secret); got != tt.want {
				t.Errorf("verifySignature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerifySignatureEveryByteMatters(t *testing.T) {
	secret := "test-app-secret"
	body := []byte("payload-bytes")
	header := signBody(body, secret)

	for i := range body {
		flipped := make([]byte, len(body))
		copy(flipped, body)
		flipped[i] ^= 0x01

		if verifySignature(flipped, header, secret) {
			t.Errorf("signature accepted after flipping byte %d", i)
		}
	}
}

func TestSignBody(t *testing.T) {
	body := []byte("test payload")
	secret := "test-secret"

	sig := signBody(body, secret)

	if !strings.HasPrefix(sig, signaturePrefix) {
		t.Errorf("signature missing %q prefix: %s", signaturePrefix, sig)
	}
	// sha256= plus 32 bytes as 64 hex chars
	if len(sig) != len(signaturePrefix)+64 {
		t.Errorf("signature length = %d, want %d", len(sig), len(signaturePrefix)+64)
	}
	if sig != signBody(body, secret) {
		t.Error("signature should be deterministic")
	}
	if sig == signBody([]byte("different"), secret) {
		t.Error("different body should produce different signature")
	}
}

func flipLastHexChar(sig string) string {
	last := sig[len(sig)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	return sig[:len(sig)-1] + string(replacement)
}
