//go:build !nogds

package cli

import _ "github.com/layoutkit/rect2lef/pkg/gds/stream"
