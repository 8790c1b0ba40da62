package etlutil

import (
	"context"
	"fmt"

	"github.com/stdiopt/vizdata/etl"
	"github.com/stdiopt/vizdata/util/conv"
)

type joinOnFunc[L, R any] func(L, R) bool

// JoinData is the data yielded by the join functions.
type JoinData[L, R any] struct {
	Left  *L
	Right *R
}

func (j JoinData[L, R]) String() string {
	return fmt.Sprintf("%v %v", j.Left, j.Right)
}

// LeftJoin loads it2 into memory and calls fn on each element of it1 and it2.
// If the fn returns true it will produce a JoinData[L,R] with the left value
// and optionaly right value
func LeftJoin[L, R any](it1, it2 Iter, fn joinOnFunc[L, R]) Iter {
	return etl.MakeGen(etl.Gen[JoinData[L, R]]{
		Run: func(ctx context.Context, yield etl.Y[JoinData[L, R]]) error {
			rightData, err := etl.CollectContext[R](ctx, it2)
			if err != nil {
				return err
			}
			return etl.ConsumeContext(ctx, it1, func(v1 L) error {
				found := false
				for _, v2 := range rightData {
					v1, v2 := v1, v2 // shadow
					if !fn(v1, v2) {
						continue
					}
					found = true
					if err := yield(JoinData[L, R]{&v1, &v2}); err != nil {
						return err
					}
				}
				if !found {
					if err := yield(JoinData[L, R]{&v1, nil}); err != nil {
						return err
					}
				}
				return nil
			})
		},
		Close: closeAll(it1, it2),
	})
}

// JoinRows left joins two drow.Row iterators on the column, a left row
// matching several right rows is produced once per match. Fields of the
// right row are added to the left row unless it already has them.
func JoinRows(left, right Iter, column string) Iter {
	on := func(l, r Row) bool {
		lf, rf := l.At(column), r.At(column)
		if lf.Name == "" || rf.Name == "" {
			return false
		}
		return conv.Equal(lf.Value, rf.Value)
	}
	return etl.Map(LeftJoin(left, right, on), func(j JoinData[Row, Row]) Row {
		row := j.Left.Clone()
		if j.Right == nil {
			return row
		}
		for _, f := range *j.Right {
			if row.Has(f.Name) {
				continue
			}
			row = append(row, f)
		}
		return row
	})
}
