package uowmock

import (
	"context"
	"errors"
	"testing"

	"hr-portal-backend/internal/domain/employee"
	"hr-portal-backend/internal/domain/uow"
	"hr-portal-backend/internal/testutil/periodmock"
	"hr-portal-backend/internal/testutil/requestmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	periods := &periodmock.Repo{}
	reqs := &requestmock.Repo{}
	repos := uow.Repos{Periods: periods, Requests: reqs}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Periods != periods || r.Requests != reqs {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := New()
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinEmployeeTx(ctx, "E", func(uow.Repos, *employee.Employee) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinEmployeeTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_WithinEmployeeTx_PropagatesError(t *testing.T) {
	sentinel := errors.New("stop")
	m := New().WithWithinEmployeeTx(func(context.Context, string, func(uow.Repos, *employee.Employee) error) error {
		return sentinel
	})
	if err := m.WithinEmployeeTx(context.Background(), "E", func(uow.Repos, *employee.Employee) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinEmployeeTx: want %v, got %v", sentinel, err)
	}
}

func TestPassthrough(t *testing.T) {
	ctx := context.Background()
	emp := &employee.Employee{EmployeeID: "E-1"}
	repos := uow.Repos{Periods: &periodmock.Repo{}}
	m := Passthrough(repos, emp)

	var got *employee.Employee
	if err := m.WithinEmployeeTx(ctx, "E-1", func(r uow.Repos, e *employee.Employee) error {
		got = e
		return nil
	}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != emp {
		t.Fatalf("employee not forwarded")
	}

	if err := m.WithinEmployeeTx(ctx, "E-2", func(uow.Repos, *employee.Employee) error { return nil }); !errors.Is(err, employee.ErrNotFound) {
		t.Fatalf("unknown employee: want ErrNotFound, got %v", err)
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New().
		WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinEmployeeTx(func(context.Context, string, func(uow.Repos, *employee.Employee) error) error { return nil })
	if m.WithinTxFn == nil || m.WithinEmployeeTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}
	m.Reset()
	if m.WithinTxFn != nil || m.WithinEmployeeTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
