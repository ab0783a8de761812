package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTools(t *testing.T) {
	linux := Tools("linux")
	assert.Len(t, linux, 3)
	assert.Equal(t, "wl-copy", linux[0][0])
	assert.Equal(t, Tool{"pbcopy"}, Tools("darwin")[0])
	assert.Empty(t, Tools("plan9"))
}
