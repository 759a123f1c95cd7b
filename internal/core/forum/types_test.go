package forum

import "testing"

func TestAsBool_TruthyEncodings(t *testing.T) {
	t.Parallel()

	truthy := []any{true, "1", "true", "TRUE", 1, int64(1), float64(1), "2"}
	for _, v := range truthy {
		if !AsBool(v) {
			t.Fatalf("AsBool(%#v) = false, want true", v)
		}
	}
}

func TestAsBool_FalsyEncodings(t *testing.T) {
	t.Parallel()

	falsy := []any{nil, false, "", "0", "false", 0, int64(0), float64(0), " ", "garbage", struct{}{}}
	for _, v := range falsy {
		if AsBool(v) {
			t.Fatalf("AsBool(%#v) = true, want false", v)
		}
	}
}

func TestAnonymousPlaceholder(t *testing.T) {
	t.Parallel()

	if Anonymous.UID != 0 || Anonymous.Username != "Anonymous" ||
		Anonymous.Userslug != "" || Anonymous.Picture != "" {
		t.Fatalf("unexpected placeholder identity: %+v", Anonymous)
	}
}
