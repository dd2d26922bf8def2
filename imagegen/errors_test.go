package imagegen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindAuth, Err: cause}, "imagegen: the provided API key is invalid"},
		{&Error{Kind: KindBlocked, Reason: "SAFETY"}, "imagegen: request was blocked by safety filters: SAFETY"},
		{&Error{Kind: KindMalformed, Reason: "no"}, `imagegen: the model responded with text instead of an image: "no"`},
		{&Error{Kind: KindMalformed}, "imagegen: the model did not return an image"},
		{&Error{Kind: KindUnknown, Err: cause}, "imagegen: generation failed: boom"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("x")))
	assert.Equal(t, KindAuth, KindOf(fmt.Errorf("wrapped: %w", &Error{Kind: KindAuth})))
	assert.Equal(t, "blocked", KindBlocked.String())
}
