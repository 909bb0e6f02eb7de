package pure

import (
	"github.com/on-the-ground/memo_ive_go/dp"
)

type args2[I1, I2 comparable] struct {
	I1 I1
	I2 I2
}

type args3[I1, I2, I3 comparable] struct {
	I1 I1
	I2 I2
	I3 I3
}

func TableizeI1O1[I1 comparable, O1 any](
	recFn func(self func(I1) O1, i1 I1) O1,
	opts ...dp.Option,
) func(I1) O1 {
	ev := dp.New(func(self dp.Recurser[I1, O1], _ struct{}, i1 I1) O1 {
		return recFn(self.Eval, i1)
	}, opts...)
	return func(i1 I1) O1 {
		return ev.MustRun(struct{}{}, i1)
	}
}

func TableizeI2O1[I1, I2 comparable, O1 any](
	recFn func(self func(I1, I2) O1, i1 I1, i2 I2) O1,
	opts ...dp.Option,
) func(I1, I2) O1 {
	ev := dp.New(func(self dp.Recurser[args2[I1, I2], O1], _ struct{}, a args2[I1, I2]) O1 {
		return recFn(func(i1 I1, i2 I2) O1 {
			return self.Eval(args2[I1, I2]{i1, i2})
		}, a.I1, a.I2)
	}, opts...)
	return func(i1 I1, i2 I2) O1 {
		return ev.MustRun(struct{}{}, args2[I1, I2]{i1, i2})
	}
}

func TableizeI3O1[I1, I2, I3 comparable, O1 any](
	recFn func(self func(I1, I2, I3) O1, i1 I1, i2 I2, i3 I3) O1,
	opts ...dp.Option,
) func(I1, I2, I3) O1 {
	ev := dp.New(func(self dp.Recurser[args3[I1, I2, I3], O1], _ struct{}, a args3[I1, I2, I3]) O1 {
		return recFn(func(i1 I1, i2 I2, i3 I3) O1 {
			return self.Eval(args3[I1, I2, I3]{i1, i2, i3})
		}, a.I1, a.I2, a.I3)
	}, opts...)
	return func(i1 I1, i2 I2, i3 I3) O1 {
		return ev.MustRun(struct{}{}, args3[I1, I2, I3]{i1, i2, i3})
	}
}

// TableizeWithI1O1 is TableizeI1O1 with a read-only auxiliary value that every
// recursive call of one top-level call shares.
func TableizeWithI1O1[C any, I1 comparable, O1 any](
	recFn func(self func(I1) O1, aux C, i1 I1) O1,
	opts ...dp.Option,
) func(C, I1) O1 {
	ev := dp.New(func(self dp.Recurser[I1, O1], aux C, i1 I1) O1 {
		return recFn(self.Eval, aux, i1)
	}, opts...)
	return func(aux C, i1 I1) O1 {
		return ev.MustRun(aux, i1)
	}
}

// TableizeWithI2O1 is TableizeI2O1 with a read-only auxiliary value.
func TableizeWithI2O1[C any, I1, I2 comparable, O1 any](
	recFn func(self func(I1, I2) O1, aux C, i1 I1, i2 I2) O1,
	opts ...dp.Option,
) func(C, I1, I2) O1 {
	ev := dp.New(func(self dp.Recurser[args2[I1, I2], O1], aux C, a args2[I1, I2]) O1 {
		return recFn(func(i1 I1, i2 I2) O1 {
			return self.Eval(args2[I1, I2]{i1, i2})
		}, aux, a.I1, a.I2)
	}, opts...)
	return func(aux C, i1 I1, i2 I2) O1 {
		return ev.MustRun(aux, args2[I1, I2]{i1, i2})
	}
}
