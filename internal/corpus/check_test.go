package corpus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	reader := &MockFileReader{Files: map[string]string{
		"/corpus/Good_[a].json":   `[{"text":"hola","start":0}]`,
		"/corpus/NoID.json":       `[{"text":"hola","start":0}]`,
		"/corpus/Empty_[b].json":  `[]`,
		"/corpus/Weird_[c].json":  `[{"text":"  ","start":1},{"text":"ok","start":-2}]`,
		"/corpus/Broken_[d].json": `[{`,
	}}
	lister := &MockDirLister{Names: []string{"Good_[a].json", "NoID.json", "Empty_[b].json", "Weird_[c].json", "Broken_[d].json"}}
	c := NewWithDependencies("/corpus", ".json", false, lister, reader)

	files, err := c.List()
	require.NoError(t, err)
	require.Len(t, files, 5)

	good := c.Check(files[0])
	assert.True(t, good.OK())
	assert.Equal(t, 1, good.Segments)

	noID := c.Check(files[1])
	assert.False(t, noID.OK())
	assert.NoError(t, noID.Err)
	require.Len(t, noID.Issues, 1)
	assert.Contains(t, noID.Issues[0], "source id")

	empty := c.Check(files[2])
	assert.Equal(t, []string{"file has no segments"}, empty.Issues)

	weird := c.Check(files[3])
	assert.Equal(t, 2, weird.Segments)
	assert.Equal(t, []string{"segment 0 has empty text", "segment 1 has negative start -2"}, weird.Issues)

	broken := c.Check(files[4])
	var parseErr *ParseError
	assert.True(t, errors.As(broken.Err, &parseErr))
	assert.False(t, broken.OK())
}
