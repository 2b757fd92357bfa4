package sealed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"sealscan/internal/ast"
	"sealscan/internal/source"
	"sealscan/internal/trace"
)

func processAll(t *testing.T, lookup SymbolLookup, units []testUnit) {
	t.Helper()
	for i, u := range units {
		if _, err := ProcessUnit(context.Background(), u.tree, u.file, lookup, Options{}); err != nil {
			t.Fatalf("unit %d: %v", i, err)
		}
	}
}

func TestTopLevelInheritorsInOrder(t *testing.T) {
	table, units := buildUnits(t, `package zoo
sealed class Animal
class Dog : Animal
class Cat : Animal()
`)
	processAll(t, table, units)
	expectInheritors(t, table, "zoo/Animal", "zoo/Dog", "zoo/Cat")
	expectUntouched(t, table, "zoo/Dog")
}

func TestNestedInheritor(t *testing.T) {
	table, units := buildUnits(t, `package p
sealed class Outer {
    class Inner : Outer()
}
`)
	processAll(t, table, units)
	expectInheritors(t, table, "p/Outer", "p/Outer.Inner")
}

func TestInheritorThroughAlias(t *testing.T) {
	table, units := buildUnits(t, `package geo
typealias Base = Shape
class Circle : Base()
sealed class Shape
`)
	processAll(t, table, units)
	expectInheritors(t, table, "geo/Shape", "geo/Circle")
}

func TestInheritorThroughAliasChain(t *testing.T) {
	table, units := buildUnits(t, `package geo
sealed interface Shape
typealias S1 = Shape
typealias S2 = S1
class Square : S2
class Dot : Shape
`)
	processAll(t, table, units)
	expectInheritors(t, table, "geo/Shape", "geo/Square", "geo/Dot")
}

func TestNoSealedClassesSkipsInjector(t *testing.T) {
	table, units := buildUnits(t, `package p
open class Base
class A : Base()
interface I
class B : I
`)
	acc, err := Collect(units[0].tree, units[0].file, table, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(acc) != 0 {
		t.Fatalf("collector map = %v, want empty", acc)
	}
	stats, err := ProcessUnit(context.Background(), units[0].tree, units[0].file, table, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if stats.InjectorVisits != 0 || stats.Filled != 0 {
		t.Fatalf("stats = %+v, want zero injector work", stats)
	}
	expectUntouched(t, table, "p/Base")
	expectUntouched(t, table, "p/I")
}

func TestUnresolvedSupertypeIsSkipped(t *testing.T) {
	table, units := buildUnits(t, `package p
sealed class S
class Bad : UnresolvedType
class Good : S()
`)
	processAll(t, table, units)
	expectInheritors(t, table, "p/S", "p/Good")
	expectUntouched(t, table, "p/Bad")
}

func TestMembersRecordedBeforeContainer(t *testing.T) {
	src := `package p
sealed class Base
class A : Base() {
    class A1 : Base()
    sealed class Inner {
        object Leaf : Inner()
    }
}
class B : Base()
`
	table, units := buildUnits(t, src)
	processAll(t, table, units)
	expectInheritors(t, table, "p/Base", "p/A.A1", "p/A", "p/B")
	expectInheritors(t, table, "p/A.Inner", "p/A.Inner.Leaf")

	again, units2 := buildUnits(t, src)
	processAll(t, again, units2)
	first, _ := classOf(t, table, "p/Base")
	second, _ := classOf(t, again, "p/Base")
	if fmt.Sprint(first.Inheritors) != fmt.Sprint(second.Inheritors) {
		t.Fatalf("order differs between runs: %v vs %v", first.Inheritors, second.Inheritors)
	}
}

func TestRerunRecomputesSameList(t *testing.T) {
	table, units := buildUnits(t, `package p
sealed class S
class A : S()
class B : S()
`)
	processAll(t, table, units)
	processAll(t, table, units)
	expectInheritors(t, table, "p/S", "p/A", "p/B")
}

func TestNonSealedClassStaysEmpty(t *testing.T) {
	table, units := buildUnits(t, `package p
open class Open
abstract class Abstract
class A : Open()
class B : Open(), Comparable<B>
class C : Abstract()
sealed class S
class D : S()
`)
	processAll(t, table, units)
	expectUntouched(t, table, "p/Open")
	expectUntouched(t, table, "p/Abstract")
	expectInheritors(t, table, "p/S", "p/D")
}

func TestCrossUnitSubclassIsNotRecorded(t *testing.T) {
	table, units := buildUnits(t,
		"package p\nsealed class S\nclass Local : S()\n",
		"package p\nclass Remote : S()\n",
	)
	stats, err := ProcessUnit(context.Background(), units[1].tree, units[1].file, table, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if stats.SealedClasses != 0 {
		t.Fatalf("remote unit recorded %d sealed classes", stats.SealedClasses)
	}
	processAll(t, table, units[:1])
	expectInheritors(t, table, "p/S", "p/Local")
}

func TestClassWithTwoSealedSupertypes(t *testing.T) {
	table, units := buildUnits(t, `package p
sealed interface A
sealed interface B
class C : A, B
`)
	processAll(t, table, units)
	expectInheritors(t, table, "p/A", "p/C")
	expectInheritors(t, table, "p/B", "p/C")
}

func TestBodilessDeclarationsKeepNextModality(t *testing.T) {
	table, units := buildUnits(t, `package p
class Plain
sealed class Shape
@Suppress("x") class Circle : Shape()
object Single
sealed interface Marker
class Both : Shape(), Marker
`)
	processAll(t, table, units)
	expectInheritors(t, table, "p/Shape", "p/Circle", "p/Both")
	expectInheritors(t, table, "p/Marker", "p/Both")
	expectUntouched(t, table, "p/Plain")
}

func TestFunInterfaceAndEnumInheritors(t *testing.T) {
	table, units := buildUnits(t, `package p
sealed interface Op
fun interface Fn : Op { fun run() }
enum class Bin : Op { PLUS, MINUS; fun apply() = 0 }
class After : Op
`)
	processAll(t, table, units)
	expectInheritors(t, table, "p/Op", "p/Fn", "p/Bin", "p/After")
}

func TestAliasCycleFails(t *testing.T) {
	table, units := buildUnits(t, `package p
typealias X = Y
typealias Y = X
class C : X
`)
	_, err := ProcessUnit(context.Background(), units[0].tree, units[0].file, table, Options{})
	if !errors.Is(err, ErrAliasCycle) {
		t.Fatalf("err = %v, want ErrAliasCycle", err)
	}
	var cycle *AliasCycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("err %T is not *AliasCycleError", err)
	}
	if got := fmt.Sprint(cycle.Chain); got != "[p/X p/Y p/X]" {
		t.Fatalf("chain = %s", got)
	}
	if cycle.Limit != 0 {
		t.Fatalf("limit = %d, want 0 for a repeated alias", cycle.Limit)
	}
}

func TestAliasDepthBound(t *testing.T) {
	table, units := buildUnits(t, `package p
sealed class S
typealias A1 = S
typealias A2 = A1
class C : A2
`)
	_, err := ProcessUnit(context.Background(), units[0].tree, units[0].file, table, Options{MaxAliasDepth: 1})
	var cycle *AliasCycleError
	if !errors.As(err, &cycle) || cycle.Limit != 1 {
		t.Fatalf("err = %v, want depth-bound alias error", err)
	}
	expectUntouched(t, table, "p/S")

	if _, err := ProcessUnit(context.Background(), units[0].tree, units[0].file, table, Options{MaxAliasDepth: 2}); err != nil {
		t.Fatalf("depth 2: %v", err)
	}
	expectInheritors(t, table, "p/S", "p/C")
}

func TestInjectorRejectsForeignNodeKind(t *testing.T) {
	for _, kind := range []ast.ItemKind{ast.ItemInvalid, ast.ItemKind(99)} {
		table, units := buildUnits(t, "package p\nsealed class S\nclass A : S()\n")
		u := units[0]
		f := u.tree.Files.Get(u.file)
		bogus := u.tree.Items.New(kind, source.NoStringID, u.file, ast.NoItemID, source.Span{}, ast.NoPayloadID)
		f.Items = append([]ast.ItemID{bogus}, f.Items...)

		_, err := ProcessUnit(context.Background(), u.tree, u.file, table, Options{})
		if !errors.Is(err, ErrInvariantViolated) {
			t.Fatalf("kind %d: err = %v, want ErrInvariantViolated", kind, err)
		}
		var inv *InvariantError
		if !errors.As(err, &inv) || inv.Unit != u.file {
			t.Fatalf("kind %d: err = %#v", kind, err)
		}
	}
}

func TestInjectorReportsUnreachedEntries(t *testing.T) {
	_, units := buildUnits(t, "package p\nclass A\n")
	u := units[0]
	orphan := u.tree.Items.NewClass(source.NoStringID, u.file, ast.NoItemID, source.Span{}, ast.ClassItem{
		ID:       ast.NewClassID("p", "Orphan"),
		Modality: ast.ModalitySealed,
	})
	acc := InheritorMap{orphan: {ast.NewClassID("p", "A")}}

	_, err := Inject(u.tree, u.file, acc)
	if !errors.Is(err, ErrInvariantViolated) {
		t.Fatalf("err = %v, want ErrInvariantViolated", err)
	}
	if !strings.Contains(err.Error(), "p/Orphan") {
		t.Fatalf("error does not name the leftover class: %v", err)
	}
}

func TestInjectEmptyMapIsNoop(t *testing.T) {
	stats, err := Inject(ast.NewBuilder(ast.Hints{}, nil), ast.FileID(42), InheritorMap{})
	if err != nil || stats.Visits != 0 {
		t.Fatalf("stats = %+v, err = %v", stats, err)
	}
}

func TestProcessUnitEmitsNodeEvents(t *testing.T) {
	table, units := buildUnits(t, "package p\nsealed class S\nclass A : S()\n")
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := ProcessUnit(ctx, units[0].tree, units[0].file, table, Options{}); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Kind.String()+":"+ev.Name)
	}
	want := "begin:sealed_inheritors point:inheritor point:inject end:sealed_inheritors"
	if got := strings.Join(names, " "); got != want {
		t.Fatalf("events = %q, want %q", got, want)
	}
}
