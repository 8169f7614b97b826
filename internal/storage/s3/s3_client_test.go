package s3

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointOptions(t *testing.T) {
	assert.Empty(t, endpointOptions(""))

	fns := endpointOptions("http://localhost:9000")
	require.Len(t, fns, 1)

	var o s3.Options
	fns[0](&o)
	require.NotNil(t, o.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *o.BaseEndpoint)
	assert.True(t, o.UsePathStyle)
}
