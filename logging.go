package liquid

import (
	"github.com/juju/loggo"
)

// log is the package-level logger for non-fatal diagnostics: unknown
// filter/operator identifiers, unbalanced-scope warnings recorded at EOF,
// and soft expression-evaluation errors.
// Callers enable output the way juju/loggo expects, e.g.:
//
//	loggo.GetLogger("liquid").SetLogLevel(loggo.DEBUG)
var log = loggo.GetLogger("liquid")
