// Package factparser implements the lexer and parser of the relviz fact
// language.
//
// A fact file is line-oriented. Each unindented line is a fact header; the
// indented lines under it form its attribute block:
//
//	# types usually live in a style file
//	node-type class, klass is-a element
//	  shape: record
//	  label: \N
//
//	class Order, Customer
//	Customer (buyer) places (order) Order
//	  style: dashed
//
// Names come in three equivalent encodings: bare words, "quoted strings"
// and """triple-quoted strings""" that may span lines. Inside quotes a
// backslash makes the next character literal. Parenthesised labels follow
// the same escaping rule and may also span lines. An unquoted # starts a
// comment.
//
// The package is split into two layers:
//
//   - Lexer: turns bytes into logical lines of decoded tokens.
//   - Parser: groups tokens into [TypeFact] and [RawFact] records.
//
// Type declarations are recognised by their keyword. Whether any other
// header is an object or a relation depends on the types it names, which
// may be declared later or in another file, so raw facts keep their
// token groups and are classified by the model builder.
//
// Usage:
//
//	file, err := factparser.Parse("facts.rv", src)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(file.Types), len(file.Raw))
package factparser
