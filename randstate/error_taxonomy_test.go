package randstate

import (
	"errors"
	"testing"

	"xdao.co/randstate/attach/memory"
	"xdao.co/randstate/identity"
	"xdao.co/randstate/wire"
)

func assertRuleID(t *testing.T, err error, kind Kind, ruleID string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected structured *randstate.Error, got %T", err)
	}
	if e.Kind != kind {
		t.Fatalf("expected Kind %s, got %s", kind, e.Kind)
	}
	if e.RuleID != ruleID {
		t.Fatalf("expected RuleID %s, got %s", ruleID, e.RuleID)
	}
}

func TestErrorTaxonomy_NotSystemCaller(t *testing.T) {
	h := newTestHandle(t, 0)
	err := h.Update(ExecContext{Caller: otherPrincipal, Epoch: 0}, 1, nil)
	assertRuleID(t, err, KindAuth, "RAND-AUTH-001")
}

func TestErrorTaxonomy_InvalidUpdate(t *testing.T) {
	h := newTestHandle(t, 0)
	err := h.Update(sysCtx(0), 5, nil)
	assertRuleID(t, err, KindUpdate, "RAND-UPD-001")
}

func TestErrorTaxonomy_MissingAttachment(t *testing.T) {
	_, err := Open(memory.New(), identity.StaticSystem{System: sysPrincipal})
	assertRuleID(t, err, KindVersion, "RAND-VER-002")
}

func TestErrorTaxonomy_VersionFieldDisagreesWithKey(t *testing.T) {
	store := memory.New()
	// Payload claiming version 2, stored under key 1.
	payload, err := wire.EncodeInner(wire.InnerV1{Version: 2, Epoch: 0, Round: 0})
	if err != nil {
		t.Fatalf("EncodeInner: %v", err)
	}
	if err := store.Put(CurrentVersion, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, oerr := Open(store, identity.StaticSystem{System: sysPrincipal})
	assertRuleID(t, oerr, KindVersion, "RAND-VER-003")
}

func TestErrorTaxonomy_UndecodablePayload(t *testing.T) {
	store := memory.New()
	if err := store.Put(CurrentVersion, []byte("garbage")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, err := Open(store, identity.StaticSystem{System: sysPrincipal})
	assertRuleID(t, err, KindVersion, "RAND-VER-004")
}

func TestErrorTaxonomy_IsKindAndRuleIDHelpers(t *testing.T) {
	err := newError(KindUpdate, "RAND-UPD-001", "out of order")
	if !IsKind(err, KindUpdate) {
		t.Fatalf("IsKind(KindUpdate) = false")
	}
	if IsKind(err, KindAuth) {
		t.Fatalf("IsKind(KindAuth) = true")
	}
	if RuleID(err) != "RAND-UPD-001" {
		t.Fatalf("RuleID: got %q", RuleID(err))
	}
	if RuleID(errors.New("plain")) != "" {
		t.Fatalf("RuleID(plain) should be empty")
	}
	if IsKind(nil, KindUpdate) {
		t.Fatalf("IsKind(nil) = true")
	}
}
