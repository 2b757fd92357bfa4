package fuzztests

import "testing"

const maxFuzzInput = 64 << 10

var seedSources = []string{
	"",
	"package p\n",
	`package zoo

sealed class Animal {
    class Dog : Animal()
}
class Cat : Animal()
`,
	`package shapes
sealed interface Shape
typealias S = Shape
typealias T = S
data class Circle(val r: Double) : T
object Empty : Shape
`,
	`package p
typealias X = Y
typealias Y = X
class Loop : X()
`,
	`package p
import q.Base
import r.*
sealed class Outer<T> {
    sealed class Inner : Outer<Int>()
    class Leaf : Inner(), Comparable<Leaf>
}
enum class Color { RED, GREEN; fun f() = 1 }
`,
	"/* unterminated /* nested */ comment\nclass A : B(",
	"class `weird name` : kotlin.Any() { val x: (Int) -> Unit = {} }",
}

func addCorpusSeeds(f *testing.F) {
	for _, src := range seedSources {
		f.Add([]byte(src))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
