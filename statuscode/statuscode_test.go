package statuscode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	t.Run("known codes", func(t *testing.T) {
		assert.Equal(t, "Not Found", Describe(404))
		assert.Equal(t, "Internal Server Error", Describe(500))
	})

	t.Run("unknown codes", func(t *testing.T) {
		assert.Equal(t, Unknown, Describe(599))
		assert.Equal(t, Unknown, Describe(0))
		assert.Equal(t, Unknown, Describe(-1))
	})
}

func TestDescribeDetailed(t *testing.T) {
	assert.Contains(t, DescribeDetailed(404), "Not Found")
	assert.Contains(t, DescribeDetailed(429), "Too Many Requests")
	assert.Equal(t, Unknown, DescribeDetailed(200))
	assert.Equal(t, Unknown, DescribeDetailed(999))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Invalid server response. Error 404: Not Found", Message(404, nil))
	assert.Equal(t, "Invalid server response. Error 499: Unknown error", Message(499, Describe))
	assert.Contains(t, Message(503, DescribeDetailed), "Error 503: Service Unavailable:")
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(200))
	assert.True(t, IsSuccess(204))
	assert.False(t, IsSuccess(199))
	assert.False(t, IsSuccess(300))
	assert.False(t, IsSuccess(404))
}
