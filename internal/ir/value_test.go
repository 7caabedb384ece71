package ir

import (
	"strings"
	"testing"
)

func TestValueStrings(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Register{N: 3}, "%3"},
		{Integer{V: 42}, "42"},
		{Integer{V: -7}, "-7"},
		{Float{V: 2.5}, "2.5"},
		{Float{V: 4}, "4.0"},
		{Variable{Name: "a"}, "%a"},
		{Global{Name: "counter"}, "@counter"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same register", Register{N: 1}, Register{N: 1}, true},
		{"different register", Register{N: 1}, Register{N: 2}, false},
		{"same integer", Integer{V: 8}, Integer{V: 8}, true},
		{"register vs integer", Register{N: 8}, Integer{V: 8}, false},
		{"floats within epsilon", Float{V: 0.1 + 0.2}, Float{V: 0.3}, true},
		{"floats apart", Float{V: 1.0}, Float{V: 1.1}, false},
		{"same variable", Variable{Name: "x"}, Variable{Name: "x"}, true},
		{"variable vs global", Variable{Name: "x"}, Global{Name: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFormatModule(t *testing.T) {
	mod := &Module{
		Name: "demo",
		Functions: []*Function{{
			Name:   "f",
			Params: []Param{{Name: "a", Type: I32}},
			Return: I32,
			Blocks: []*BasicBlock{{
				Label: "entry",
				Instructions: []Instruction{
					&Binary{Op: Add, Left: Variable{Name: "a"}, Right: Integer{V: 1}, Dest: Register{N: 1}, Type: I32},
					&Return{Value: Register{N: 1}, Type: I32},
				},
			}},
		}},
	}

	got := FormatModule(mod)
	for _, want := range []string{
		"module demo",
		"fn f(a: i32) -> i32 {",
		"entry:",
		"%1 = add i32 %a, 1",
		"ret i32 %1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatted module missing %q\n%s", want, got)
		}
	}
}
