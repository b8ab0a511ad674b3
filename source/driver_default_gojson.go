// Package source makes go-json the default JSON driver when imported:
//
//	import _ "github.com/reoring/modelcheck/source"
package source

import (
	"github.com/reoring/modelcheck"
	drvgojson "github.com/reoring/modelcheck/source/gojson"
)

// init lives in a separate package to avoid an import cycle in the root package.
func init() { modelcheck.SetJSONDriver(drvgojson.Driver()) }
