package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_UsageOnNoArgs(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(nil, &out, &errOut); code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
	if !strings.Contains(errOut.String(), "Usage:") {
		t.Fatalf("expected usage output, got %q", errOut.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"bogus"}, &out, &errOut); code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
	if !strings.Contains(errOut.String(), "unknown command") {
		t.Fatalf("expected unknown command message, got %q", errOut.String())
	}
}

func TestKeygen_DeterministicFromSeed(t *testing.T) {
	seed := strings.Repeat("ab", 32)

	var out1, out2, errOut bytes.Buffer
	if code := run([]string{"keygen", "--seed-hex", seed}, &out1, &errOut); code != 0 {
		t.Fatalf("keygen failed (%d): %s", code, errOut.String())
	}
	if code := run([]string{"keygen", "--seed-hex", seed}, &out2, &errOut); code != 0 {
		t.Fatalf("keygen(2) failed (%d): %s", code, errOut.String())
	}
	if out1.String() != out2.String() {
		t.Fatalf("keygen not deterministic:\n%s\n%s", out1.String(), out2.String())
	}
	if !strings.Contains(out1.String(), "principal: ed25519:") {
		t.Fatalf("missing principal line: %q", out1.String())
	}
}

func TestKeygen_RejectsBadSeed(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"keygen", "--seed-hex", "abcd"}, &out, &errOut); code != 2 {
		t.Fatalf("exit code %d, want 2", code)
	}
}

func TestParseSeedHex(t *testing.T) {
	good := strings.Repeat("01", 32)
	if _, err := parseSeedHex(good); err != nil {
		t.Fatalf("parseSeedHex(valid): %v", err)
	}
	if _, err := parseSeedHex("0x" + good); err != nil {
		t.Fatalf("parseSeedHex(0x prefix): %v", err)
	}
	if _, err := parseSeedHex("zz"); err == nil {
		t.Fatalf("expected error for non-hex seed")
	}
	if _, err := parseSeedHex("abcd"); err == nil {
		t.Fatalf("expected error for short seed")
	}
}
