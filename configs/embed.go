// Package configs provides the embedded configuration template for
// concord. The template is embedded at build time so it ships with
// every distribution, source builds included.
//
// It is written by `concord config init` to the user config path and
// documents every setting with its default value.
package configs

import _ "embed"

// ConfigTemplate is the annotated user configuration template.
//
//go:embed config.example.yaml
var ConfigTemplate string
