// Package fuzztests holds fuzz targets for the lexer and for the whole
// parse, resolve and sealed-inheritor pipeline. Run them with
//
//	go test ./internal/fuzz -fuzz=FuzzSealedPipeline
package fuzztests
