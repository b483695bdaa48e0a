package connector

import (
	"fmt"
	"strings"
)

// Las consultas del paquete usan ? como marcador neutral. MySQL y
// SQLite lo aceptan tal cual; PostgreSQL necesita $1, $2... y SQL
// Server @param0, @param1... Los reescritores ignoran los ? dentro de
// literales entre comillas simples para no romper expresiones de mapeo.

// rewritePostgresPlaceholders reemplaza cada ? por $n, 1-based.
func rewritePostgresPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inString := false
	for _, r := range query {
		switch {
		case r == '\'':
			inString = !inString
			b.WriteRune(r)
		case r == '?' && !inString:
			n++
			fmt.Fprintf(&b, "$%d", n)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// rewriteMSSQLPlaceholders reemplaza cada ? por @paramN, 0-based, en
// correspondencia con los nombres que el conector registra por posición.
func rewriteMSSQLPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	inString := false
	for _, r := range query {
		switch {
		case r == '\'':
			inString = !inString
			b.WriteRune(r)
		case r == '?' && !inString:
			fmt.Fprintf(&b, "@param%d", n)
			n++
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
