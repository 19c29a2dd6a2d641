package contactplan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/sabr-route/contactplan"
	_ "github.com/katalvlaran/sabr-route/contactplan/asabr"
	_ "github.com/katalvlaran/sabr-route/contactplan/ion"
	_ "github.com/katalvlaran/sabr-route/contactplan/tvgutil"
)

func TestRegistry_AllFormatsRegistered(t *testing.T) {
	names := contactplan.Names()
	assert.Contains(t, names, "ion")
	assert.Contains(t, names, "tvgutil")
	assert.Contains(t, names, "asabr")
}

func TestRegistry_LookupUnknownFormat(t *testing.T) {
	_, ok := contactplan.Lookup("does-not-exist")
	assert.False(t, ok)
}

func TestParseError_UnwrapsCause(t *testing.T) {
	cause := assert.AnError
	err := &contactplan.ParseError{Format: "ion", Line: 3, Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "ion:3")
}
