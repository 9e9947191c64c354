package query

import "errors"

// ErrValidation covers missing required request fields.
var ErrValidation = errors.New("missing required fields")

// ErrIntentUndetectable means neither the keyword rules nor the classifier
// could map the text to a service. The user can recover by rephrasing.
var ErrIntentUndetectable = errors.New("could not detect intent")
