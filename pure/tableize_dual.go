package pure

import (
	"github.com/on-the-ground/memo_ive_go/dp"
)

type result[O1 any, O2 any] struct {
	O1 O1
	O2 O2
}

func TableizeI1O2[I1 comparable, O1, O2 any](
	recFn func(self func(I1) (O1, O2), i1 I1) (O1, O2),
	opts ...dp.Option,
) func(I1) (O1, O2) {
	ev := dp.New(func(self dp.Recurser[I1, result[O1, O2]], _ struct{}, i1 I1) result[O1, O2] {
		v1, v2 := recFn(func(i1 I1) (O1, O2) {
			res := self.Eval(i1)
			return res.O1, res.O2
		}, i1)
		return result[O1, O2]{O1: v1, O2: v2}
	}, opts...)
	return func(i1 I1) (O1, O2) {
		res := ev.MustRun(struct{}{}, i1)
		return res.O1, res.O2
	}
}

func TableizeI2O2[I1, I2 comparable, O1, O2 any](
	recFn func(self func(I1, I2) (O1, O2), i1 I1, i2 I2) (O1, O2),
	opts ...dp.Option,
) func(I1, I2) (O1, O2) {
	ev := dp.New(func(self dp.Recurser[args2[I1, I2], result[O1, O2]], _ struct{}, a args2[I1, I2]) result[O1, O2] {
		v1, v2 := recFn(func(i1 I1, i2 I2) (O1, O2) {
			res := self.Eval(args2[I1, I2]{i1, i2})
			return res.O1, res.O2
		}, a.I1, a.I2)
		return result[O1, O2]{O1: v1, O2: v2}
	}, opts...)
	return func(i1 I1, i2 I2) (O1, O2) {
		res := ev.MustRun(struct{}{}, args2[I1, I2]{i1, i2})
		return res.O1, res.O2
	}
}
