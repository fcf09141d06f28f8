package typeid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDs(t *testing.T) {
	tests := []struct {
		prefix string
		gen    func() string
	}{
		{PrefixPoint, NewPointID},
		{PrefixNode, NewNodeID},
		{PrefixSession, NewSessionID},
	}
	for _, tt := range tests {
		id := tt.gen()
		assert.True(t, strings.HasPrefix(id, tt.prefix+"_"), id)
		assert.NoError(t, Validate(id, tt.prefix))
		assert.NotEqual(t, id, tt.gen())
	}
}

func TestValidate(t *testing.T) {
	assert.Error(t, Validate(NewPointID(), PrefixNode))
	assert.Error(t, Validate("not an id", PrefixPoint))
}
