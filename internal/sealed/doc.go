// Package sealed fills the inheritor list of every sealed class.
//
// For one compilation unit the pass runs in two steps:
//
//   - Collect walks the unit depth-first (members before the class itself)
//     and records, for each sealed class declared in the unit, the classes
//     of the same unit that name it as a direct supertype.
//   - Inject walks the unit again and writes each recorded list onto its
//     sealed class, removing the entry as it goes.
//
// Supertype references are resolved through a SymbolLookup; type aliases
// are unwound until a class is reached.
package sealed
