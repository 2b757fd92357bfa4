package parser

import (
	"slices"
	"testing"

	"sealscan/internal/ast"
)

type classShape struct {
	name     string
	kind     ast.ClassKind
	modality ast.Modality
	supers   []string
}

func topLevelClasses(t *testing.T, b *ast.Builder, file ast.FileID) []classShape {
	t.Helper()
	var out []classShape
	for _, id := range b.Files.Get(file).Items {
		cls, ok := b.Items.Class(id)
		if !ok {
			continue
		}
		out = append(out, classShape{
			name:     b.Name(b.Items.Get(id).Name),
			kind:     cls.Kind,
			modality: cls.Modality,
			supers:   superNames(b, cls),
		})
	}
	return out
}

func TestParseHeaderBoundaries(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []classShape
	}{
		{
			name: "bodiless class before sealed class",
			src:  "class Plain\nsealed class Shape\nclass Circle : Shape()\n",
			want: []classShape{
				{"Plain", ast.ClassKindClass, ast.ModalityFinal, []string{}},
				{"Shape", ast.ClassKindClass, ast.ModalitySealed, []string{}},
				{"Circle", ast.ClassKindClass, ast.ModalityFinal, []string{"Shape"}},
			},
		},
		{
			name: "consecutive sealed interfaces",
			src:  "sealed interface A\nsealed interface B\nclass C : A, B\n",
			want: []classShape{
				{"A", ast.ClassKindInterface, ast.ModalitySealed, []string{}},
				{"B", ast.ClassKindInterface, ast.ModalitySealed, []string{}},
				{"C", ast.ClassKindClass, ast.ModalityFinal, []string{"A", "B"}},
			},
		},
		{
			name: "annotated declaration after object",
			src:  "object Single\n@Deprecated(\"x\") open class Base\nabstract class Impl : Base()\n",
			want: []classShape{
				{"Single", ast.ClassKindObject, ast.ModalityFinal, []string{}},
				{"Base", ast.ClassKindClass, ast.ModalityOpen, []string{}},
				{"Impl", ast.ClassKindClass, ast.ModalityAbstract, []string{"Base"}},
			},
		},
		{
			name: "enum class with supertype after interface",
			src:  "interface Op\nenum class Bin : Op { PLUS, MINUS; fun apply() = 0 }\n",
			want: []classShape{
				{"Op", ast.ClassKindInterface, ast.ModalityAbstract, []string{}},
				{"Bin", ast.ClassKindEnum, ast.ModalityFinal, []string{"Op"}},
			},
		},
		{
			name: "primary constructor modifiers",
			src:  "class Svc @Inject constructor(val x: Int) : Base()\nclass Hidden private constructor()\nsealed class Next\n",
			want: []classShape{
				{"Svc", ast.ClassKindClass, ast.ModalityFinal, []string{"Base"}},
				{"Hidden", ast.ClassKindClass, ast.ModalityFinal, []string{}},
				{"Next", ast.ClassKindClass, ast.ModalitySealed, []string{}},
			},
		},
		{
			name: "fun interface",
			src:  "sealed interface Op\nfun interface Fn : Op { fun run() }\nprivate fun interface Quiet\nclass After : Op\n",
			want: []classShape{
				{"Op", ast.ClassKindInterface, ast.ModalitySealed, []string{}},
				{"Fn", ast.ClassKindInterface, ast.ModalityAbstract, []string{"Op"}},
				{"Quiet", ast.ClassKindInterface, ast.ModalityAbstract, []string{}},
				{"After", ast.ClassKindClass, ast.ModalityFinal, []string{"Op"}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, file, bag := parseSnippet(t, tt.src)
			if bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
			}
			got := topLevelClasses(t, b, file)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d classes %+v, want %d", len(got), got, len(tt.want))
			}
			for i, w := range tt.want {
				g := got[i]
				if g.name != w.name || g.kind != w.kind || g.modality != w.modality || !slices.Equal(g.supers, w.supers) {
					t.Fatalf("class %d = %+v, want %+v", i, g, w)
				}
			}
		})
	}
}

func TestParseEnumWithSupertypeKeepsMembers(t *testing.T) {
	b, file, bag := parseSnippet(t, "interface Op\nenum class Bin : Op { PLUS, MINUS; fun apply() = 0 }\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	bin := mustClass(t, b, b.Files.Get(file).Items[1])
	if len(bin.Members) != 1 || b.Items.Get(bin.Members[0]).Kind != ast.ItemFun {
		t.Fatalf("enum members = %v", bin.Members)
	}
}

func TestParseFunInterfaceMembers(t *testing.T) {
	b, file, bag := parseSnippet(t, "fun interface Fn { fun run(x: Int): Int }\nfun helper() = 1\n")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	items := b.Files.Get(file).Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	fn := mustClass(t, b, items[0])
	if fn.Kind != ast.ClassKindInterface || len(fn.Members) != 1 {
		t.Fatalf("fun interface: kind=%v members=%d", fn.Kind, len(fn.Members))
	}
	if b.Items.Get(items[1]).Kind != ast.ItemFun {
		t.Fatalf("helper kind = %v", b.Items.Get(items[1]).Kind)
	}
}
