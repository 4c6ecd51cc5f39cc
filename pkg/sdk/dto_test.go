package sdk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsGinResponse(t *testing.T) {
	code, body := NewSuccessResponse("done", "payload").AsGinResponse()

	assert.Equal(t, 200, code)
	assert.Equal(t, ApiResponse[string]{
		Status:  StatusSuccess,
		Code:    200,
		Message: "done",
		Data:    "payload",
	}, body)
}

func TestNewErrorResponse(t *testing.T) {
	t.Run("error values are stringified", func(t *testing.T) {
		resp := NewErrorResponse(500, "failed", errors.New("boom"))
		assert.Equal(t, "boom", resp.Error)
	})

	t.Run("nil error stays nil", func(t *testing.T) {
		resp := NewErrorResponse(404, "not found", nil)
		assert.Nil(t, resp.Error)
	})

	t.Run("plain values pass through", func(t *testing.T) {
		resp := NewErrorResponse(400, "bad request", "details")
		assert.Equal(t, "details", resp.Error)
	})
}
