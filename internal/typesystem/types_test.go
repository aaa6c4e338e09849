package typesystem

import "testing"

func TestEqualsIgnoresSize(t *testing.T) {
	if !TYarn(3).Equals(TYarn(7)) {
		t.Error("YARNs of different sizes should be equal types")
	}
	if TNumber.Equals(TNumbar) {
		t.Error("NUMBER and NUMBAR should differ")
	}
	if TYarn(3) == TYarn(7) {
		t.Error("struct equality should still see the size")
	}
}

func TestFromName(t *testing.T) {
	tests := map[string]Type{
		"NUMBER": TNumber,
		"NUMBAR": TNumbar,
		"YARN":   TYarn(1),
		"TROOF":  TTroof,
		"NOOB":   TNoob,
	}
	for name, want := range tests {
		got, ok := FromName(name)
		if !ok || got != want {
			t.Errorf("FromName(%s) = %v, %v", name, got, ok)
		}
	}
	if _, ok := FromName("NUMBR"); ok {
		t.Error("expected unknown type name to fail")
	}
}

func TestDescribe(t *testing.T) {
	if got := TYarn(5).Describe(); got != "YARN(5)" {
		t.Errorf("got %s", got)
	}
	if got := TTroof.Describe(); got != "TROOF" {
		t.Errorf("got %s", got)
	}
}
