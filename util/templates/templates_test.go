package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLongDesc(t *testing.T) {
	got := LongDesc(`
		Airborne CLI manages OTA releases.

		  Indented detail.
	`)
	assert.Equal(t, "Airborne CLI manages OTA releases.\n\n  Indented detail.", got)
	assert.Equal(t, "", LongDesc(""))
}

func TestExamples(t *testing.T) {
	got := Examples(`
		# List releases
		airborne release list

		airborne release get rel-1
	`)
	assert.Equal(t, "  # List releases\n  airborne release list\n\n  airborne release get rel-1", got)
}
