// Package web holds the embedded browser front-end for the converter.
package web

import _ "embed"

//go:embed static/index.html
var IndexHTML []byte

//go:embed static/about.html
var AboutHTML []byte

//go:embed static/favicon.svg
var FaviconSVG []byte
