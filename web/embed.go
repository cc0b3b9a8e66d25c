// Package web holds the embedded comparison page.
package web

import _ "embed"

//go:embed index.html
var Index []byte
