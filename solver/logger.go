package solver

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// solvLog is the sub-logger for the solver package, with module=solver field.
// All logs in this package use it instead of manually prefixing messages.
var solvLog zerolog.Logger = log.With().Str("module", "solver").Logger()
