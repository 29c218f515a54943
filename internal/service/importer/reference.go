package importer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"technet-admin/internal/storage"
)

type ReferenceSource interface {
	ListOperators(ctx context.Context) ([]storage.Operator, error)
	ListTechnicians(ctx context.Context) ([]storage.Technician, error)
	ListOrderTypes(ctx context.Context) ([]storage.OrderType, error)
	ListDrTypes(ctx context.Context) ([]storage.DrType, error)
	ListAcometidas(ctx context.Context) ([]storage.Acometida, error)
}

// LoadReferenceData параллельно грузит все пять справочников. Любая ошибка отменяет остальные.
func LoadReferenceData(ctx context.Context, src ReferenceSource) (storage.ReferenceData, error) {
	const op = "importer.LoadReferenceData"

	var ref storage.ReferenceData

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ref.Operators, err = src.ListOperators(gCtx)
		if err != nil {
			return fmt.Errorf("operadores: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ref.Technicians, err = src.ListTechnicians(gCtx)
		if err != nil {
			return fmt.Errorf("tecnicos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ref.OrderTypes, err = src.ListOrderTypes(gCtx)
		if err != nil {
			return fmt.Errorf("tipodeordenes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ref.DrTypes, err = src.ListDrTypes(gCtx)
		if err != nil {
			return fmt.Errorf("dr: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ref.Acometidas, err = src.ListAcometidas(gCtx)
		if err != nil {
			return fmt.Errorf("acometidas: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return storage.ReferenceData{}, fmt.Errorf("%s: %w", op, err)
	}

	return ref, nil
}
