package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	a, b int
}

func TestApply(t *testing.T) {
	tgt := &target{}
	err := Apply(tgt,
		NoError(func(tg *target) { tg.a = 1 }),
		New(func(tg *target) error { tg.b = 2; return nil }),
	)
	require.NoError(t, err)
	require.Equal(t, &target{a: 1, b: 2}, tgt)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	boom := errors.New("boom")
	tgt := &target{}
	err := Apply(tgt,
		New(func(*target) error { return boom }),
		NoError(func(tg *target) { tg.a = 1 }),
	)
	require.ErrorIs(t, err, boom)
	require.Zero(t, tgt.a, "later options must not run after a failure")
}
