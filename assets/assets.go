// Package assets carries the dataset and sources documents compiled into the binary.
package assets

import _ "embed"

//go:embed armor_data.json
var ArmorData []byte

//go:embed armor_sources.json
var ArmorSources []byte
