package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/segseq/errs"
)

type target struct {
	width int
	name  string
	calls []string
}

func setWidth(n int) *Func[*target] {
	return Named("width", func(t *target) error {
		if n < 0 {
			return errors.New("must not be negative")
		}
		t.width = n
		t.calls = append(t.calls, "width")

		return nil
	})
}

func setName(name string) *Func[*target] {
	return NoError(func(t *target) {
		t.name = name
		t.calls = append(t.calls, "name")
	})
}

func TestApply_Order(t *testing.T) {
	tg := &target{}
	require.NoError(t, Apply(tg, setName("a"), setWidth(3), setName("b")))
	require.Equal(t, "b", tg.name)
	require.Equal(t, 3, tg.width)
	require.Equal(t, []string{"name", "width", "name"}, tg.calls)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	tg := &target{}
	err := Apply(tg, setName("a"), setWidth(-1), setName("b"))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
	require.EqualError(t, err, "invalid option: width: must not be negative")
	require.Equal(t, []string{"name"}, tg.calls)
}

func TestApply_PreservesSentinels(t *testing.T) {
	sentinel := errors.New("sentinel")
	opt := New(func(*target) error { return sentinel })

	err := Apply(&target{}, opt)
	require.ErrorIs(t, err, sentinel)
	require.ErrorIs(t, err, errs.ErrInvalidOption)

	wrapped := New(func(*target) error { return errs.ErrInvalidOption })
	err = Apply(&target{}, wrapped)
	require.Equal(t, errs.ErrInvalidOption, err)
}

func TestApply_SkipsNil(t *testing.T) {
	tg := &target{}
	require.NoError(t, Apply[*target](tg, nil, setWidth(1)))
	require.Equal(t, 1, tg.width)
	require.NoError(t, Apply[*target](tg))
}
