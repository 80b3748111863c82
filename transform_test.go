package lazymap

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/matryer/is"
)

func TestFuncTransform(t *testing.T) {
	is := is.New(t)

	transform := FuncTransform(strconv.Itoa)

	str, err := transform(context.Background(), 42, 0)

	is.NoErr(err)
	is.Equal(str, "42")
}

func TestTryFuncTransform(t *testing.T) {
	is := is.New(t)

	transform := TryFuncTransform(strconv.Atoi)

	i, err := transform(context.Background(), "42", 0)

	is.NoErr(err)
	is.Equal(i, 42)

	_, err = transform(context.Background(), "forty-two", 1)

	var numErr *strconv.NumError

	is.True(errors.As(err, &numErr))
}

func TestIdentity(t *testing.T) {
	is := is.New(t)

	elem, err := Identity[string]()(context.Background(), "x", 7)

	is.NoErr(err)
	is.Equal(elem, "x")
}
