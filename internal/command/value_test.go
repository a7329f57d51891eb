package command

import "testing"

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{String("hi"), "hi"},
		{Number(3), "3"},
		{Number(2.5), "2.5"},
		{Bool(true), "true"},
		{Value{}, ""},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValueOf(t *testing.T) {
	if v, ok := ValueOf(5); !ok || !v.IsNumber() || v.Int() != 5 {
		t.Errorf("ValueOf(5) = %v, %v", v, ok)
	}
	if v, ok := ValueOf(false); !ok || !v.IsBool() || v.Bool() {
		t.Errorf("ValueOf(false) = %v, %v", v, ok)
	}
	if _, ok := ValueOf([]int{1}); ok {
		t.Error("ValueOf(slice) should fail")
	}
}

func TestArgsPositionals(t *testing.T) {
	a := Args{
		"_10":  String("c"),
		"_2":   String("b"),
		"_0":   String("a"),
		"text": String("named"),
		"_x":   String("not positional"),
	}

	keys := a.PositionalKeys()
	want := []string{"_0", "_2", "_10"}
	if len(keys) != len(want) {
		t.Fatalf("PositionalKeys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("PositionalKeys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	vals := a.Positionals()
	if vals[0].String() != "a" || vals[2].String() != "c" {
		t.Errorf("Positionals() = %v", vals)
	}
}

func TestArgsFormat(t *testing.T) {
	a := Args{"b": Number(2), "a": String("x y")}
	want := `a="x y" b="2"`
	if got := a.Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
