package data

import (
	_ "embed"
)

//go:embed defaults/settings.json
var DefaultSettings string
