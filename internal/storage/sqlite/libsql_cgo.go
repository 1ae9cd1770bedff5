//go:build cgo

package sqlite

// go-libsql only builds with cgo enabled.
import _ "github.com/tursodatabase/go-libsql"
